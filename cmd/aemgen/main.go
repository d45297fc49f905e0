// Package main is the entry point for the aemgen CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/adobe/generator-aem-sub001/internal/cmd"
	oerrors "github.com/adobe/generator-aem-sub001/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Check if the error carries an explicit exit code
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			// Only print if the command layer hasn't already printed it
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}

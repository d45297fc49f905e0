package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/output"
	"github.com/adobe/generator-aem-sub001/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the aemgen version and the detected Maven installation.`,
		Args:  cobra.NoArgs,
		RunE:  runE(runVersion),
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	output.Println(version.GetInfo().String())

	mvn := version.DetectMavenBinary()
	if mvn.Found {
		output.Println(fmt.Sprintf("Maven:\n  Version:  %s\n  Path:     %s", mvn.Version, mvn.Path))
	} else {
		output.Println("Maven:    not found (" + mvn.Message + ")")
	}
	return nil
}

// Package maven integrates with the external Maven build tool: invoking it
// after root-level generation and resolving artifact versions from a
// repository's metadata endpoint.
package maven

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/output"
)

// Runner executes Maven in a project directory.
type Runner struct {
	workDir    string
	showOutput bool

	// binary is overridable in tests.
	binary string
}

// NewRunner creates a runner for the given project directory. With
// showOutput the build streams to the terminal, otherwise it runs behind a
// spinner and only surfaces output on failure.
func NewRunner(workDir string, showOutput bool) *Runner {
	return &Runner{workDir: workDir, showOutput: showOutput, binary: "mvn"}
}

// Install runs `mvn clean install` in the runner's directory. A non-zero
// exit is fatal; the caller is expected to retry manually once the cause is
// fixed.
func (r *Runner) Install(ctx context.Context) error {
	args := []string{"clean", "install"}
	output.Debug("running maven", "dir", r.workDir, "args", strings.Join(args, " "))

	if r.showOutput {
		cmd := exec.CommandContext(ctx, r.binary, args...)
		cmd.Dir = r.workDir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return errors.NewExternalError("Maven build failed in "+r.workDir, err)
		}
		return nil
	}

	var buf bytes.Buffer
	action := func() error {
		cmd := exec.CommandContext(ctx, r.binary, args...)
		cmd.Dir = r.workDir
		cmd.Stdout = &buf
		cmd.Stderr = &buf
		return cmd.Run()
	}

	err := output.RunWithSpinner(ctx, action, output.WithTitle("Running mvn clean install..."))
	if err != nil {
		return errors.NewExternalError(
			fmt.Sprintf("Maven build failed in %s\n%s", r.workDir, tail(buf.String(), 20)),
			err,
		)
	}
	return nil
}

// tail returns the last n lines of text.
func tail(text string, n int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

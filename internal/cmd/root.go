// Package cmd provides CLI command implementations.
package cmd

import (
	goerrors "errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/config"
	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/output"
)

var (
	// Global flags
	dirFlag             string
	configFlag          string
	defaultsFlag        bool
	verboseFlag         bool
	showBuildOutputFlag bool
	noBuildFlag         bool

	// Resolved configuration (loaded during PersistentPreRunE)
	cliConfig *config.Config

	// cmdFs is the filesystem all generation goes through. Tests swap in
	// a MemMapFs.
	cmdFs afero.Fs = afero.NewOsFs()
)

// NewRootCmd creates the root command for the aemgen CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aemgen",
		Short:         "AEM project scaffolding CLI",
		Long:          `aemgen scaffolds and extends multi-module Maven projects for Adobe Experience Manager.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals()
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory to generate into")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: AEMGEN_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&defaultsFlag, "defaults", false, "Accept computed defaults without requiring every option")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&showBuildOutputFlag, "show-build-output", false, "Stream Maven output instead of hiding it behind a spinner")
	rootCmd.PersistentFlags().BoolVar(&noBuildFlag, "no-build", false, "Skip the Maven build after generation")

	// Add subcommands
	rootCmd.AddCommand(NewProjectCmd())
	rootCmd.AddCommand(NewBundleCmd())
	rootCmd.AddCommand(NewPackageCmd())
	rootCmd.AddCommand(NewConfigModuleCmd())
	rootCmd.AddCommand(NewAllCmd())
	rootCmd.AddCommand(NewTestsCmd())
	rootCmd.AddCommand(NewStructureCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// runE wraps a command handler so a fatal error is logged once, here, and
// propagates with its exit code attached. main only prints errors that
// skipped this path.
func runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		var exitErr *errors.ExitError
		if goerrors.As(err, &exitErr) {
			return err
		}
		output.Error(err.Error())
		exitErr = errors.NewExitError(err, errors.ExitCodeFromError(err))
		exitErr.Printed = true
		return exitErr
	}
}

// initializeGlobals sets up logging and loads the global configuration.
func initializeGlobals() error {
	output.SetupLogging(verboseFlag)

	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		// Generation can proceed on defaults; a broken config file only
		// costs its values.
		output.Debug("config load error", "error", err)
		cfg = (&config.Config{}).WithDefaults()
	}
	cliConfig = cfg
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/state"
)

var configModArtifactID string

// NewConfigModuleCmd creates the config command.
func NewConfigModuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [name]",
		Short: "Create or extend the OSGi configuration module",
		Long: `Create or extend the module carrying OSGi run-mode configuration.

At most one config module may exist per project. The directory name
defaults to ui.config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runE(runConfigModule),
	}

	cmd.Flags().StringVar(&configModArtifactID, "artifact-id", "", "Module artifact id (defaults to <appId>.<name>)")

	return cmd
}

func runConfigModule(cmd *cobra.Command, args []string) error {
	dirName := defaultModuleDirs[state.TypeConfig]
	if len(args) == 1 {
		dirName = args[0]
	}
	return generateModule(configModuleRequest(dirName, configModArtifactID))
}

func configModuleRequest(dirName, artifactID string) moduleRequest {
	return moduleRequest{
		moduleType:   state.TypeConfig,
		templateName: "config",
		dirName:      dirName,
		options:      optionProps(state.PropArtifactID, artifactID),
		defaults: func(parent *state.ParentProperties, dirName string) state.Properties {
			return state.Properties{
				state.PropArtifactID: parent.AppID + "." + dirName,
				state.PropName:       defaultModuleName(parent, dirName),
			}
		},
	}
}

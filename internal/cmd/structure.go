package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/state"
)

var structureArtifactID string

// NewStructureCmd creates the structure command.
func NewStructureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structure [name]",
		Short: "Create or extend the repository-structure package",
		Long: `Create or extend the package that claims the repository roots the
project's content packages deploy into.

At most one repository-structure module may exist per project. The
directory name defaults to ui.apps.structure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runE(runStructure),
	}

	cmd.Flags().StringVar(&structureArtifactID, "artifact-id", "", "Module artifact id (defaults to <appId>.<name>)")

	return cmd
}

func runStructure(cmd *cobra.Command, args []string) error {
	dirName := defaultModuleDirs[state.TypeStructure]
	if len(args) == 1 {
		dirName = args[0]
	}
	return generateModule(structureRequest(dirName, structureArtifactID))
}

func structureRequest(dirName, artifactID string) moduleRequest {
	return moduleRequest{
		moduleType:   state.TypeStructure,
		templateName: "structure",
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

package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/state"
)

var allArtifactID string

// NewAllCmd creates the all command.
func NewAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all [name]",
		Short: "Create or extend the aggregate deployment package",
		Long: `Create or extend the container package that bundles every other
module for single-artifact deployment.

At most one aggregate package may exist per project. The directory name
defaults to all. Sibling bundle, package, and config modules present at
generation time are added as dependencies.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runE(runAll),
	}

	cmd.Flags().StringVar(&allArtifactID, "artifact-id", "", "Module artifact id (defaults to <appId>.<name>)")

	return cmd
}

func runAll(cmd *cobra.Command, args []string) error {
	dirName := defaultModuleDirs[state.TypeAll]
	if len(args) == 1 {
		dirName = args[0]
	}
	return generateModule(allRequest(dirName, allArtifactID))
}

func allRequest(dirName, artifactID string) moduleRequest {
	return moduleRequest{
		moduleType:   state.TypeAll,
		templateName: "all",
		dirName:      dirName,
		options:      optionProps(state.PropArtifactID, artifactID),
		defaults: func(parent *state.ParentProperties, dirName string) state.Properties {
			return state.Properties{
				state.PropArtifactID: parent.AppID + "." + dirName,
				state.PropName:       defaultModuleName(parent, dirName),
			}
		},
		wire: wireAllDependencies,
	}
}

// wireAllDependencies adds every sibling module the aggregate embeds:
// bundles as jar entries, content and config packages as zip entries.
func wireAllDependencies(fsys afero.Fs, dir string, parent *state.ParentProperties) error {
	bundles, err := state.FindModulesByType(fsys, parent.Dir, state.TypeBundle)
	if err != nil {
		return err
	}
	if err := mergeModuleDependencies(fsys, dir, bundles, parent.GroupID, ""); err != nil {
		return err
	}

	for _, moduleType := range []string{state.TypePackage, state.TypeConfig} {
		refs, err := state.FindModulesByType(fsys, parent.Dir, moduleType)
		if err != nil {
			return err
		}
		if err := mergeModuleDependencies(fsys, dir, refs, parent.GroupID, "zip"); err != nil {
			return err
		}
	}
	return nil
}

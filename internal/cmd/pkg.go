package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/state"
)

var (
	packageArtifactID string
	packageName       string
)

// NewPackageCmd creates the package command.
func NewPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package <name>",
		Short: "Create or extend a content package module",
		Long: `Create or extend a content package module carrying /apps content.

A config module must already exist in the project; content packages depend
on the OSGi configuration it carries.

Examples:
  # Create the ui.apps content package
  aemgen package ui.apps`,
		Args: cobra.ExactArgs(1),
		RunE: runE(runPackage),
	}

	cmd.Flags().StringVar(&packageArtifactID, "artifact-id", "", "Module artifact id (defaults to <appId>.<name>)")
	cmd.Flags().StringVar(&packageName, "name", "", "Human-readable module name")

	return cmd
}

func runPackage(cmd *cobra.Command, args []string) error {
	req := packageRequest(args[0], packageArtifactID)
	if packageName != "" {
		req.options[state.PropName] = packageName
	}
	return generateModule(req)
}

func packageRequest(dirName, artifactID string) moduleRequest {
	return moduleRequest{
		moduleType:   state.TypePackage,
		templateName: "package",
		dirName:      dirName,
		options:      optionProps(state.PropArtifactID, artifactID),
		defaults: func(parent *state.ParentProperties, dirName string) state.Properties {
			return state.Properties{
				state.PropArtifactID: parent.AppID + "." + dirName,
				state.PropName:       defaultModuleName(parent, dirName),
			}
		},
		precondition: requireConfigModule,
		wire: func(fsys afero.Fs, dir string, parent *state.ParentProperties) error {
			refs, err := state.FindModulesByType(fsys, parent.Dir, state.TypeBundle)
			if err != nil {
				return err
			}
			return mergeModuleDependencies(fsys, dir, refs, parent.GroupID, "")
		},
	}
}

// requireConfigModule is the content-package precondition: the OSGi
// configuration module must exist first.
func requireConfigModule(fsys afero.Fs, projectDir string) error {
	refs, err := state.FindModulesByType(fsys, projectDir, state.TypeConfig)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return errors.NewPreconditionError(
			"no Config Module found in "+projectDir+"; a content package requires one",
			"Run 'aemgen config' first to create it.",
		)
	}
	return nil
}

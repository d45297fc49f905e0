package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/state"
)

var (
	testsArtifactID string
	testsPackage    string
)

// NewTestsCmd creates the tests command.
func NewTestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tests [name]",
		Short: "Create or extend the integration-test module",
		Long: `Create or extend the module running HTTP integration tests against a
deployed instance.

At most one integration-test module may exist per project. The directory
name defaults to it.tests.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runE(runTests),
	}

	cmd.Flags().StringVar(&testsArtifactID, "artifact-id", "", "Module artifact id (defaults to <appId>.<name>)")
	cmd.Flags().StringVar(&testsPackage, "package", "", "Java package for test code")

	return cmd
}

func runTests(cmd *cobra.Command, args []string) error {
	dirName := defaultModuleDirs[state.TypeTests]
	if len(args) == 1 {
		dirName = args[0]
	}
	return generateModule(testsRequest(dirName, testsArtifactID, testsPackage))
}

func testsRequest(dirName, artifactID, javaPackage string) moduleRequest {
	return moduleRequest{
		moduleType:   state.TypeTests,
		templateName: "tests",
		dirName:      dirName,
		options: optionProps(
			state.PropArtifactID, artifactID,
			state.PropPackage, javaPackage,
		),
		defaults: func(parent *state.ParentProperties, dirName string) state.Properties {
			return state.Properties{
				state.PropArtifactID: parent.AppID + "." + dirName,
				state.PropName:       defaultModuleName(parent, dirName),
				state.PropPackage:    defaultJavaPackage(parent),
			}
		},
	}
}

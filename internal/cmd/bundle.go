package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/state"
)

var (
	bundleArtifactID string
	bundleName       string
	bundlePackage    string
)

// NewBundleCmd creates the bundle command.
func NewBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <name>",
		Short: "Create or extend an OSGi bundle module",
		Long: `Create or extend an OSGi bundle module holding the project's Java code.

Examples:
  # Create the core bundle with defaults
  aemgen bundle core

  # Create a bundle with an explicit Java package
  aemgen bundle core --package com.example.myapp.core`,
		Args: cobra.ExactArgs(1),
		RunE: runE(runBundle),
	}

	cmd.Flags().StringVar(&bundleArtifactID, "artifact-id", "", "Module artifact id (defaults to <appId>.<name>)")
	cmd.Flags().StringVar(&bundleName, "name", "", "Human-readable module name")
	cmd.Flags().StringVar(&bundlePackage, "package", "", "Java package for bundle code")

	return cmd
}

func runBundle(cmd *cobra.Command, args []string) error {
	req := bundleRequest(args[0], bundleArtifactID, bundlePackage)
	if bundleName != "" {
		req.options[state.PropName] = bundleName
	}
	return generateModule(req)
}

func bundleRequest(dirName, artifactID, javaPackage string) moduleRequest {
	return moduleRequest{
		moduleType:   state.TypeBundle,
		templateName: "bundle",
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

// defaultModuleName derives a human-readable module name from the project
// name and the module directory.
func defaultModuleName(parent *state.ParentProperties, dirName string) string {
	base := parent.Name
	if base == "" {
		base = parent.AppID
	}
	return base + " - " + dirName
}

// defaultJavaPackage derives the Java package from the project coordinates.
// Hyphens are dropped since they are not valid in package names.
func defaultJavaPackage(parent *state.ParentProperties) string {
	appID := strings.ReplaceAll(parent.AppID, "-", "")
	if parent.GroupID == "" {
		return appID
	}
	return parent.GroupID + "." + appID
}

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/maven"
	"github.com/adobe/generator-aem-sub001/internal/module"
	"github.com/adobe/generator-aem-sub001/internal/output"
	"github.com/adobe/generator-aem-sub001/internal/pom"
	"github.com/adobe/generator-aem-sub001/internal/state"
	"github.com/adobe/generator-aem-sub001/internal/templates"
)

var (
	projGroupID     string
	projArtifactID  string
	projAppID       string
	projName        string
	projVersion     string
	projAemVersion  string
	projJavaVersion string
	projSdkVersion  string
	projModules     []string
)

// moduleOrder is the generation order for composed sub-modules: a config
// module must exist before a content package, the aggregate package last.
var moduleOrder = []string{
	state.TypeBundle,
	state.TypeStructure,
	state.TypeConfig,
	state.TypePackage,
	state.TypeTests,
	state.TypeAll,
}

// defaultModuleDirs maps composed module types to their directory names.
var defaultModuleDirs = map[string]string{
	state.TypeBundle:    "core",
	state.TypeStructure: "ui.apps.structure",
	state.TypeConfig:    "ui.config",
	state.TypePackage:   "ui.apps",
	state.TypeTests:     "it.tests",
	state.TypeAll:       "all",
}

// NewProjectCmd creates the project command.
func NewProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create or extend the root AEM project",
		Long: `Create or extend the root Maven project that all modules attach to.

The project command is the only invocation that runs the Maven build after
generation; module commands composed through --modules defer their build to
this one.

Examples:
  # Create a project with explicit coordinates
  aemgen project --group-id com.example --app-id myapp

  # Create a project plus a standard module set in one run
  aemgen project --group-id com.example --app-id myapp \
    --modules bundle,config,package,all

  # Target AEM 6.5 instead of the cloud SDK
  aemgen project --group-id com.example --app-id myapp --aem-version 6.5.18`,
		Args: cobra.NoArgs,
		RunE: runE(runProject),
	}

	cmd.Flags().StringVar(&projGroupID, "group-id", "", "Maven group id (env: AEMGEN_GROUP_ID)")
	cmd.Flags().StringVar(&projArtifactID, "artifact-id", "", "Root artifact id (defaults to the app id)")
	cmd.Flags().StringVar(&projAppID, "app-id", "", "Application id used in content paths (defaults to the directory name)")
	cmd.Flags().StringVar(&projName, "name", "", "Human-readable project name")
	cmd.Flags().StringVar(&projVersion, "project-version", "1.0.0-SNAPSHOT", "Project version")
	cmd.Flags().StringVar(&projAemVersion, "aem-version", "", "Target platform: cloud, or a 6.5.x version")
	cmd.Flags().StringVar(&projJavaVersion, "java-version", "", "Java release the build targets")
	cmd.Flags().StringVar(&projSdkVersion, "sdk-version", "", "aem-sdk-api version (cloud targets; default: latest released)")
	cmd.Flags().StringSliceVar(&projModules, "modules", nil,
		fmt.Sprintf("Module types to generate alongside the project (%s)", strings.Join(moduleOrder, ", ")))

	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
	requested, err := requestedModules()
	if err != nil {
		return err
	}

	groupID := projGroupID
	if groupID == "" && cliConfig != nil {
		groupID = cliConfig.GroupID
	}
	if groupID == "" {
		return errors.Wrap(errors.ErrValidation,
			"group id is required; pass --group-id or set groupId in the config file")
	}

	appID := projAppID
	if appID == "" {
		appID = projArtifactID
	}
	if appID == "" {
		if !defaultsFlag {
			return errors.Wrap(errors.ErrValidation,
				"app id is required; pass --app-id, or --defaults to use the directory name")
		}
		abs, err := filepath.Abs(dirFlag)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", dirFlag, err)
		}
		appID = filepath.Base(abs)
	}

	artifactID := projArtifactID
	if artifactID == "" {
		artifactID = appID
	}
	name := projName
	if name == "" {
		name = appID
	}

	aemVersion := projAemVersion
	javaVersion := projJavaVersion
	if cliConfig != nil {
		if aemVersion == "" {
			aemVersion = cliConfig.AemVersion
		}
		if javaVersion == "" {
			javaVersion = cliConfig.JavaVersion
		}
	}

	if err := guardProjectCoordinates(groupID, artifactID); err != nil {
		return err
	}

	cloud := aemVersion == "cloud"
	sdkVersion := projSdkVersion
	if cloud && sdkVersion == "" {
		sdkVersion, err = resolveSdkVersion(cmd.Context())
		if err != nil {
			return err
		}
	}

	lc := &module.Lifecycle{
		Fs:         cmdFs,
		ProjectDir: dirFlag,
		Dir:        dirFlag,
		ModuleType: state.TypeProject,
		Options: optionProps(
			state.PropGroupID, groupID,
			state.PropArtifactID, artifactID,
			state.PropAppID, appID,
			state.PropName, name,
			state.PropVersion, projVersion,
			state.PropAemVersion, aemVersion,
			state.PropSdkVersion, sdkVersion,
			state.PropJavaVersion, javaVersion,
		),
		Verbose: verboseFlag,
	}
	if err := lc.Initialize(); err != nil {
		return err
	}
	if err := lc.Configure(); err != nil {
		return err
	}

	props := lc.Properties()
	data := templates.Data{
		GroupID:     props.String(state.PropGroupID),
		ArtifactID:  props.String(state.PropArtifactID),
		Version:     props.String(state.PropVersion),
		Name:        props.String(state.PropName),
		AppID:       props.String(state.PropAppID),
		AemVersion:  props.String(state.PropAemVersion),
		SdkVersion:  props.String(state.PropSdkVersion),
		JavaVersion: props.String(state.PropJavaVersion),
	}

	results, err := lc.Write("project", data)
	if err != nil {
		return err
	}
	if err := switchRootPlatform(data); err != nil {
		return err
	}
	printSummary(".", state.TypeProject, results)

	for _, moduleType := range requested {
		if err := generateComposedModule(moduleType); err != nil {
			return err
		}
	}

	if noBuildFlag {
		output.Info("skipping Maven build", "reason", "--no-build")
		return nil
	}
	showOutput := showBuildOutputFlag
	if cliConfig != nil && cliConfig.ShowBuildOutput {
		showOutput = true
	}
	return lc.Finalize(cmd.Context(), maven.NewRunner(dirFlag, showOutput))
}

// requestedModules validates and orders the --modules values.
func requestedModules() ([]string, error) {
	seen := map[string]bool{}
	for _, m := range projModules {
		if _, ok := defaultModuleDirs[m]; !ok {
			return nil, errors.Wrap(errors.ErrValidation,
				fmt.Sprintf("unknown module type %q; valid types: %s", m, strings.Join(moduleOrder, ", ")))
		}
		seen[m] = true
	}

	var ordered []string
	for _, m := range moduleOrder {
		if seen[m] {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

// generateComposedModule runs a sub-module generation with its default
// directory name as part of a project invocation.
func generateComposedModule(moduleType string) error {
	dirName := defaultModuleDirs[moduleType]
	switch moduleType {
	case state.TypeBundle:
		return generateModule(bundleRequest(dirName, "", ""))
	case state.TypeStructure:
		return generateModule(structureRequest(dirName, ""))
	case state.TypeConfig:
		return generateModule(configModuleRequest(dirName, ""))
	case state.TypePackage:
		return generateModule(packageRequest(dirName, ""))
	case state.TypeTests:
		return generateModule(testsRequest(dirName, "", ""))
	case state.TypeAll:
		return generateModule(allRequest(dirName, ""))
	}
	return nil
}

// guardProjectCoordinates fails when the target directory already holds a
// project with different coordinates, before anything is written. The
// sidecar entry is authoritative when present, the descriptor otherwise.
// The version is not compared; bumping it on a re-run is legitimate.
func guardProjectCoordinates(groupID, artifactID string) error {
	sidecar, err := state.LoadSidecar(cmdFs, dirFlag)
	if err != nil {
		return err
	}

	var existing pom.Coordinates
	if entry := sidecar.Entry(state.TypeProject); entry != nil {
		existing.GroupID = entry.String(state.PropGroupID)
		existing.ArtifactID = entry.String(state.PropArtifactID)
	} else if pom.Exists(cmdFs, dirFlag) {
		desc, err := pom.Load(cmdFs, dirFlag)
		if err != nil {
			return err
		}
		existing = desc.Coordinates()
	} else {
		return nil
	}

	mismatch := (existing.GroupID != "" && existing.GroupID != groupID) ||
		(existing.ArtifactID != "" && existing.ArtifactID != artifactID)
	if mismatch {
		return errors.NewConflictError(
			fmt.Sprintf("%s already holds project %s:%s; refusing to regenerate as %s:%s",
				dirFlag, existing.GroupID, existing.ArtifactID, groupID, artifactID),
			dirFlag,
			"Re-run with the existing coordinates, or target a different directory.",
		)
	}
	return nil
}

// resolveSdkVersion looks up the latest released aem-sdk-api version.
func resolveSdkVersion(ctx context.Context) (string, error) {
	repoURL := maven.DefaultRepositoryURL
	if cliConfig != nil && cliConfig.RepositoryURL != "" {
		repoURL = cliConfig.RepositoryURL
	}
	output.Debug("resolving latest aem-sdk-api version", "repository", repoURL)
	var latest string
	err := output.RunWithSpinner(ctx, func() error {
		var lookupErr error
		latest, lookupErr = maven.NewMetadataClient(repoURL).LatestVersion(ctx, "com.adobe.aem", "aem-sdk-api")
		return lookupErr
	},
		output.WithTitle("Resolving latest aem-sdk-api version..."),
		output.WithTimeout(time.Minute),
	)
	return latest, err
}

// switchRootPlatform retargets a pre-existing root descriptor's managed
// platform dependency when the target platform changed between runs.
func switchRootPlatform(data templates.Data) error {
	desc, err := pom.Load(cmdFs, dirFlag)
	if err != nil {
		return err
	}
	platformVersion := data.SdkVersion
	if !data.Cloud() {
		platformVersion = data.AemVersion
	}
	desc.SwitchPlatformDependency(data.Cloud(), platformVersion)
	return desc.Save(cmdFs, dirFlag)
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	"github.com/adobe/generator-aem-sub001/internal/config"
	"github.com/adobe/generator-aem-sub001/internal/module"
	"github.com/adobe/generator-aem-sub001/internal/output"
	"github.com/adobe/generator-aem-sub001/internal/pom"
	"github.com/adobe/generator-aem-sub001/internal/state"
	"github.com/adobe/generator-aem-sub001/internal/templates"
)

// moduleRequest describes one sub-module generation run.
type moduleRequest struct {
	moduleType   string
	templateName string
	dirName      string

	// options are the explicit invocation options, highest precedence.
	options state.Properties

	// defaults computes the lowest-precedence fallbacks from the parent
	// project context.
	defaults func(parent *state.ParentProperties, dirName string) state.Properties

	// precondition runs before anything is loaded or written.
	precondition func(fsys afero.Fs, projectDir string) error

	// wire runs after the module files are written, for descriptors that
	// reference sibling modules.
	wire func(fsys afero.Fs, dir string, parent *state.ParentProperties) error
}

// generateModule runs the lifecycle phases for one module directory under
// the project in dirFlag.
func generateModule(req moduleRequest) error {
	projectDir := dirFlag
	dir := filepath.Join(projectDir, req.dirName)

	if req.precondition != nil {
		if err := req.precondition(cmdFs, projectDir); err != nil {
			return err
		}
	}

	parent, err := state.LoadParentProperties(cmdFs, projectDir)
	if err != nil {
		return err
	}
	applyConfigFallbacks(parent)

	defaults := state.Properties{}
	if req.defaults != nil {
		defaults = req.defaults(parent, req.dirName)
	}

	lc := &module.Lifecycle{
		Fs:         cmdFs,
		ProjectDir: projectDir,
		Dir:        dir,
		ModuleType: req.moduleType,
		Options:    req.options,
		Defaults:   defaults,
		Verbose:    verboseFlag,
	}
	if err := lc.Initialize(); err != nil {
		return err
	}
	if err := lc.Configure(); err != nil {
		return err
	}

	results, err := lc.Write(req.templateName, moduleData(lc.Properties(), parent))
	if err != nil {
		return err
	}

	if req.wire != nil {
		if err := req.wire(cmdFs, dir, parent); err != nil {
			return err
		}
	}

	printSummary(req.dirName, req.moduleType, results)
	return nil
}

// applyConfigFallbacks fills project context fields the sidecar and
// descriptor left blank from the global configuration.
func applyConfigFallbacks(parent *state.ParentProperties) {
	cfg := cliConfig
	if cfg == nil {
		cfg = (&config.Config{}).WithDefaults()
	}
	if parent.AemVersion == "" {
		parent.AemVersion = cfg.AemVersion
	}
	if parent.JavaVersion == "" {
		parent.JavaVersion = cfg.JavaVersion
	}
}

// moduleData maps resolved module properties plus the inherited project
// context onto the template input.
func moduleData(props state.Properties, parent *state.ParentProperties) templates.Data {
	return templates.Data{
		GroupID:     parent.GroupID,
		ArtifactID:  props.String(state.PropArtifactID),
		Version:     parent.Version,
		Name:        props.String(state.PropName),
		AppID:       parent.AppID,
		Package:     props.String(state.PropPackage),
		AemVersion:  parent.AemVersion,
		JavaVersion: parent.JavaVersion,
		Parent: templates.ParentRef{
			GroupID:    parent.GroupID,
			ArtifactID: parent.ArtifactID,
			Version:    parent.Version,
		},
	}
}

// printSummary prints the per-file outcome of a generation run.
func printSummary(dirName, moduleType string, results []module.FileResult) {
	output.Println(output.StyleSummary.Render(fmt.Sprintf("%s module", moduleType)) + " " + output.StyleNoun.Render(dirName) + ":")

	entries := make([]output.FileEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, output.FileEntry{
			Path:        "  " + filepath.Join(dirName, r.Path),
			Description: output.StatusStyle(r.Status).Render(r.Status),
		})
	}
	output.Print(output.RenderFileTree(entries, 50))
}

// optionProps builds an options map from key/value flag pairs, skipping
// flags the user did not set.
func optionProps(pairs ...string) state.Properties {
	props := state.Properties{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			props[pairs[i]] = pairs[i+1]
		}
	}
	return props
}

// mergeModuleDependencies adds one dependency entry per discovered sibling
// module to the descriptor in dir. The skeleton carries the shared shape;
// coordinates are overridden per module, so entries already present keep
// any hand-made adjustments.
func mergeModuleDependencies(fsys afero.Fs, dir string, refs []state.ModuleRef, groupID, depType string) error {
	if len(refs) == 0 {
		return nil
	}

	desc, err := pom.Load(fsys, dir)
	if err != nil {
		return err
	}
	deps := pom.FindSection(desc.Project(), "dependencies")
	if deps == nil {
		return nil
	}

	for _, ref := range refs {
		artifactID := ref.Properties.String(state.PropArtifactID)
		if artifactID == "" {
			continue
		}
		skeleton := pom.NewDependency(pom.Coordinates{Version: "${project.version}"}, depType)
		pom.MergeDependencies(deps, []*etree.Element{skeleton}, &pom.Coordinates{
			GroupID:    groupID,
			ArtifactID: artifactID,
		})
	}
	return desc.Save(fsys, dir)
}

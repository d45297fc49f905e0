// Package module orchestrates the generation lifecycle shared by every
// module generator: Initialize loads and resolves properties, Configure
// persists them, Write renders templates and reconciles descriptors, and
// Finalize runs the external build.
//
// Phases run strictly in sequence. An error aborts the remaining phases of
// the invocation; files written by completed earlier phases stay on disk.
package module

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/output"
	"github.com/adobe/generator-aem-sub001/internal/pom"
	"github.com/adobe/generator-aem-sub001/internal/state"
	"github.com/adobe/generator-aem-sub001/internal/templates"
)

// BuildRunner runs the external build during Finalize.
type BuildRunner interface {
	Install(ctx context.Context) error
}

// FileResult reports the outcome for one generated file.
type FileResult struct {
	// Path is relative to the module directory.
	Path string

	// Status is one of the output.Status* constants.
	Status string
}

// Lifecycle drives the generation phases for one module directory.
type Lifecycle struct {
	// Fs is the filesystem all reads and writes go through.
	Fs afero.Fs

	// ProjectDir is the root project directory. Equal to Dir when
	// generating the root project itself.
	ProjectDir string

	// Dir is the module directory being generated into.
	Dir string

	// ModuleType tags the sidecar entry this generator owns.
	ModuleType string

	// Options are the explicit invocation options, highest precedence.
	Options state.Properties

	// Defaults are the generator's computed fallbacks, lowest precedence.
	Defaults state.Properties

	// Verbose enables descriptor diff previews on merge.
	Verbose bool

	sidecar *state.Sidecar
	parent  *state.ParentProperties
	props   state.Properties
}

// Initialize guards the target directory, loads the sidecar and parent
// context, and resolves the effective properties. No file is written.
func (l *Lifecycle) Initialize() error {
	sidecar, err := state.LoadSidecar(l.Fs, l.Dir)
	if err != nil {
		return err
	}
	l.sidecar = sidecar

	if !sidecar.Empty() && !sidecar.HasType(l.ModuleType) {
		return errors.NewConflictError(
			fmt.Sprintf("%s already holds a %s module, not a %s module", l.Dir, strings.Join(sidecar.Types(), "+"), l.ModuleType),
			l.Dir,
			"Pick a different directory, or re-run the generator matching the existing module type.",
		)
	}

	if l.Dir != l.ProjectDir {
		if state.Singleton(l.ModuleType) {
			if err := state.DuplicateCheck(l.Fs, l.ProjectDir, l.ModuleType, l.Dir); err != nil {
				return err
			}
		}
		parent, err := state.LoadParentProperties(l.Fs, l.ProjectDir)
		if err != nil {
			return err
		}
		l.parent = parent
	}

	descriptor := state.Properties{}
	if pom.Exists(l.Fs, l.Dir) {
		desc, err := pom.Load(l.Fs, l.Dir)
		if err != nil {
			return err
		}
		c := desc.Coordinates()
		descriptor[state.PropGroupID] = c.GroupID
		descriptor[state.PropArtifactID] = c.ArtifactID
		descriptor[state.PropVersion] = c.Version
		descriptor[state.PropName] = desc.Name()
	}

	l.props = state.Resolve(l.Options, sidecar.Entry(l.ModuleType), descriptor, l.Defaults)
	return nil
}

// Properties returns the resolved effective properties. Valid after
// Initialize.
func (l *Lifecycle) Properties() state.Properties {
	return l.props
}

// Parent returns the inherited project context, nil for the root project
// invocation. Valid after Initialize.
func (l *Lifecycle) Parent() *state.ParentProperties {
	return l.parent
}

// Configure persists the resolved properties into this module's sidecar
// entry.
func (l *Lifecycle) Configure() error {
	l.sidecar.SetEntry(l.ModuleType, l.props)
	return l.sidecar.Save(l.Fs, l.Dir)
}

// Write renders the module's template tree and reconciles it with the
// directory contents. Descriptors merge into what exists; every other
// existing file is left untouched.
func (l *Lifecycle) Write(templateName string, data templates.Data) ([]FileResult, error) {
	files, err := templates.Render(templateName, data)
	if err != nil {
		return nil, err
	}

	var results []FileResult
	for _, f := range files {
		status, err := l.writeFile(f)
		if err != nil {
			results = append(results, FileResult{Path: f.TargetPath, Status: output.StatusFailed})
			return results, err
		}
		results = append(results, FileResult{Path: f.TargetPath, Status: status})
	}

	if err := l.registerModule(); err != nil {
		return results, err
	}
	return results, nil
}

// Finalize runs the external build. A nil runner skips the phase, which is
// how composed sub-generators defer the single build to their invoker.
func (l *Lifecycle) Finalize(ctx context.Context, runner BuildRunner) error {
	if runner == nil {
		return nil
	}
	return runner.Install(ctx)
}

func (l *Lifecycle) writeFile(f templates.File) (string, error) {
	target := filepath.Join(l.Dir, f.TargetPath)

	if filepath.Base(f.TargetPath) == pom.Filename {
		return l.writeDescriptor(target, string(f.Content))
	}

	exists, err := afero.Exists(l.Fs, target)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", target, err)
	}
	if exists {
		return output.StatusUnchanged, nil
	}

	if err := l.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if err := afero.WriteFile(l.Fs, target, f.Content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	return output.StatusCreated, nil
}

// writeDescriptor writes a fresh descriptor, or merges the rendered
// fragment into the existing one so hand-made edits survive re-runs.
func (l *Lifecycle) writeDescriptor(target, fragment string) (string, error) {
	incoming, err := pom.Parse(fragment)
	if err != nil {
		return "", err
	}

	exists, err := afero.Exists(l.Fs, target)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", target, err)
	}
	if !exists {
		if err := l.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := incoming.Save(l.Fs, filepath.Dir(target)); err != nil {
			return "", err
		}
		return output.StatusCreated, nil
	}

	before, err := afero.ReadFile(l.Fs, target)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", target, err)
	}
	existing, err := pom.Parse(string(before))
	if err != nil {
		return "", err
	}

	existing.Merge(incoming)

	after, err := existing.Serialize()
	if err != nil {
		return "", err
	}
	if after == string(before) {
		return output.StatusUnchanged, nil
	}

	if l.Verbose {
		output.Debug("descriptor merge", "path", target)
		output.Print(output.RenderTextDiff(string(before), after))
	}
	if err := afero.WriteFile(l.Fs, target, []byte(after), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	return output.StatusMerged, nil
}

// registerModule adds this module to the parent descriptor's module list.
// The root project registers nothing.
func (l *Lifecycle) registerModule() error {
	if l.Dir == l.ProjectDir || !pom.Exists(l.Fs, l.ProjectDir) {
		return nil
	}

	rel, err := filepath.Rel(l.ProjectDir, l.Dir)
	if err != nil {
		return fmt.Errorf("relativizing %s: %w", l.Dir, err)
	}

	parent, err := pom.Load(l.Fs, l.ProjectDir)
	if err != nil {
		return err
	}
	for _, m := range parent.Modules() {
		if m == rel {
			return nil
		}
	}
	parent.AddModule(rel)
	return parent.Save(l.Fs, l.ProjectDir)
}

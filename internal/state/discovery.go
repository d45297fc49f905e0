package state

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/pom"
)

// ModuleRef points at an existing module discovered through the parent
// descriptor's module list and the directory's sidecar.
type ModuleRef struct {
	Dir        string
	Properties Properties
}

// FindModulesByType walks the project descriptor's declared module list and
// collects every subdirectory whose sidecar carries an entry for the given
// type. A project without a descriptor has no modules.
func FindModulesByType(fsys afero.Fs, projectDir, moduleType string) ([]ModuleRef, error) {
	if !pom.Exists(fsys, projectDir) {
		return nil, nil
	}
	desc, err := pom.Load(fsys, projectDir)
	if err != nil {
		return nil, err
	}

	var refs []ModuleRef
	for _, name := range desc.Modules() {
		dir := filepath.Join(projectDir, name)
		sidecar, err := LoadSidecar(fsys, dir)
		if err != nil {
			return nil, err
		}
		if entry := sidecar.Entry(moduleType); entry != nil {
			refs = append(refs, ModuleRef{Dir: dir, Properties: entry})
		}
	}
	return refs, nil
}

// DuplicateCheck fails when a singleton module type already exists in a
// sibling directory other than targetDir. It trusts each sidecar's declared
// type; directory contents are not re-validated.
func DuplicateCheck(fsys afero.Fs, projectDir, moduleType, targetDir string) error {
	refs, err := FindModulesByType(fsys, projectDir, moduleType)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if filepath.Clean(ref.Dir) != filepath.Clean(targetDir) {
			return errors.NewConflictError(
				fmt.Sprintf("a %s module already exists in %s; only one is permitted per project", moduleType, ref.Dir),
				ref.Dir,
				"Re-run against the existing module directory to extend it.",
			)
		}
	}
	return nil
}

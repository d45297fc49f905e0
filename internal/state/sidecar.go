// Package state persists per-module generation metadata in a sidecar file
// and answers discovery queries over a project's module directories.
//
// The filesystem is the only state store surviving across invocations; all
// access goes through afero so tests can substitute an in-memory fs.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Filename is the sidecar filename inside each module directory.
const Filename = ".aemgen.yaml"

// Module type tags recorded in sidecar entries.
const (
	TypeProject   = "project"
	TypeBundle    = "bundle"
	TypePackage   = "package"
	TypeConfig    = "config"
	TypeAll       = "all"
	TypeTests     = "it.tests"
	TypeStructure = "structure"
)

// Sidecar property keys shared across generators.
const (
	PropModuleType  = "moduleType"
	PropGroupID     = "groupId"
	PropArtifactID  = "artifactId"
	PropName        = "name"
	PropVersion     = "version"
	PropAppID       = "appId"
	PropPackage     = "package"
	PropAemVersion  = "aemVersion"
	PropSdkVersion  = "sdkVersion"
	PropJavaVersion = "javaVersion"
)

// singletonTypes lists module types permitted at most once per project.
var singletonTypes = map[string]bool{
	TypeConfig:    true,
	TypeAll:       true,
	TypeTests:     true,
	TypeStructure: true,
}

// Singleton reports whether at most one module of the given type may exist
// per project.
func Singleton(moduleType string) bool {
	return singletonTypes[moduleType]
}

// Properties is a free-form map of generation-time properties.
type Properties map[string]any

// String returns the property as a string, "" when absent or non-string.
func (p Properties) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Clone returns a shallow copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Sidecar is the parsed sidecar document of one module directory, keyed by
// module-type tag.
type Sidecar struct {
	entries map[string]Properties
}

// LoadSidecar reads the sidecar of a module directory. A missing file
// yields an empty sidecar, not an error.
func LoadSidecar(fsys afero.Fs, dir string) (*Sidecar, error) {
	path := filepath.Join(dir, Filename)
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Sidecar{entries: map[string]Properties{}}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	entries := map[string]Properties{}
	if err := yaml.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Sidecar{entries: entries}, nil
}

// Entry returns the stored properties for a module type, nil when absent.
func (s *Sidecar) Entry(moduleType string) Properties {
	return s.entries[moduleType]
}

// SetEntry merges props into the entry for moduleType with shallow
// per-key overwrite: this invocation's values win, untouched keys are
// preserved. The moduleType lifecycle field is always stamped.
func (s *Sidecar) SetEntry(moduleType string, props Properties) {
	entry := s.entries[moduleType]
	if entry == nil {
		entry = Properties{}
		s.entries[moduleType] = entry
	}
	for k, v := range props {
		entry[k] = v
	}
	entry[PropModuleType] = moduleType
}

// Types returns the recorded module-type tags in sorted order.
func (s *Sidecar) Types() []string {
	types := make([]string, 0, len(s.entries))
	for t := range s.entries {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// HasType reports whether an entry exists for the given module type.
func (s *Sidecar) HasType(moduleType string) bool {
	return s.entries[moduleType] != nil
}

// Empty reports whether the sidecar has no entries.
func (s *Sidecar) Empty() bool {
	return len(s.entries) == 0
}

// Save writes the sidecar back into its module directory.
func (s *Sidecar) Save(fsys afero.Fs, dir string) error {
	content, err := yaml.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("marshaling sidecar: %w", err)
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, Filename)
	if err := afero.WriteFile(fsys, path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

package state

import (
	"github.com/spf13/afero"

	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/pom"
)

// ParentProperties is the read-only project context inherited by module
// generators. It is loaded from the project directory's sidecar and
// descriptor and never merged into a module's own persisted properties.
type ParentProperties struct {
	Dir         string
	GroupID     string
	ArtifactID  string
	Version     string
	Name        string
	AppID       string
	AemVersion  string
	JavaVersion string
}

// Coordinates returns the parent project's Maven coordinates.
func (p *ParentProperties) Coordinates() pom.Coordinates {
	return pom.Coordinates{GroupID: p.GroupID, ArtifactID: p.ArtifactID, Version: p.Version}
}

// LoadParentProperties resolves the project context from projectDir,
// sidecar values first, descriptor fields as fallback. Missing both means
// there is no project to generate into.
func LoadParentProperties(fsys afero.Fs, projectDir string) (*ParentProperties, error) {
	sidecar, err := LoadSidecar(fsys, projectDir)
	if err != nil {
		return nil, err
	}
	entry := sidecar.Entry(TypeProject)

	if entry == nil && !pom.Exists(fsys, projectDir) {
		return nil, errors.NewContextError(
			"no project found in "+projectDir,
			projectDir,
			"Run 'aemgen project' first to create the root project.",
		)
	}

	props := &ParentProperties{Dir: projectDir}
	if entry != nil {
		props.GroupID = entry.String(PropGroupID)
		props.ArtifactID = entry.String(PropArtifactID)
		props.Version = entry.String(PropVersion)
		props.Name = entry.String(PropName)
		props.AppID = entry.String(PropAppID)
		props.AemVersion = entry.String(PropAemVersion)
		props.JavaVersion = entry.String(PropJavaVersion)
	}

	if pom.Exists(fsys, projectDir) {
		desc, err := pom.Load(fsys, projectDir)
		if err != nil {
			return nil, err
		}
		c := desc.Coordinates()
		if props.GroupID == "" {
			props.GroupID = c.GroupID
		}
		if props.ArtifactID == "" {
			props.ArtifactID = c.ArtifactID
		}
		if props.Version == "" {
			props.Version = c.Version
		}
		if props.Name == "" {
			props.Name = desc.Name()
		}
		if props.AppID == "" {
			props.AppID = c.ArtifactID
		}
	}

	return props, nil
}

// Resolve merges property layers by precedence, highest first: a key's
// value comes from the first layer that holds it. Blank strings count as
// unset so descriptor-derived fallbacks can fill them.
func Resolve(layers ...Properties) Properties {
	out := Properties{}
	for _, layer := range layers {
		for k, v := range layer {
			if _, taken := out[k]; taken {
				continue
			}
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			out[k] = v
		}
	}
	return out
}

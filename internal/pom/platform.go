package pom

import "github.com/beevik/etree"

// Platform API artifacts swapped based on the target AEM version. Versions
// and scope come from the parent dependencyManagement section.
var (
	sdkAPICoordinates  = Coordinates{GroupID: "com.adobe.aem", ArtifactID: "aem-sdk-api"}
	uberJarCoordinates = Coordinates{GroupID: "com.adobe.aem", ArtifactID: "uber-jar"}
)

// NewDependency builds a <dependency> entry for the given coordinates. A
// non-empty depType adds a <type> child (e.g. "zip" for content packages).
func NewDependency(c Coordinates, depType string) *etree.Element {
	el := etree.NewElement("dependency")
	el.CreateElement("groupId").SetText(c.GroupID)
	el.CreateElement("artifactId").SetText(c.ArtifactID)
	if c.Version != "" {
		el.CreateElement("version").SetText(c.Version)
	}
	if depType != "" {
		el.CreateElement("type").SetText(depType)
	}
	return el
}

// SwitchPlatformDependency retracts the platform API dependency that does
// not match the target platform and merges the matching one in. Re-running
// a generator against a descriptor produced for the other platform swaps
// the entry instead of accumulating both. Sections that never carried a
// platform dependency are left alone.
//
// version is rendered only into the dependencyManagement entry; plain
// dependency sections inherit it from there.
func (d *Descriptor) SwitchPlatformDependency(cloud bool, version string) {
	keep, drop := sdkAPICoordinates, uberJarCoordinates
	if !cloud {
		keep, drop = uberJarCoordinates, sdkAPICoordinates
	}

	if deps := FindSection(d.Project(), "dependencies"); deps != nil {
		swapDependency(deps, drop, keep, "")
	}
	if deps := FindSection(d.Project(), "dependencyManagement", "dependencies"); deps != nil {
		swapDependency(deps, drop, keep, version)
	}
}

func swapDependency(deps *etree.Element, drop, keep Coordinates, version string) {
	dropEl := NewDependency(drop, "")
	if findMatch(deps, dropEl, SameCoordinates) == nil {
		return
	}
	RemoveDependencies(deps, []*etree.Element{dropEl})

	keep.Version = version
	keepEl := NewDependency(keep, "")
	if version != "" {
		keepEl.CreateElement("scope").SetText("provided")
	}
	MergeDependencies(deps, []*etree.Element{keepEl}, nil)
}

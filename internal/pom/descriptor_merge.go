package pom

import "github.com/beevik/etree"

// filevaultPluginArtifactID identifies the content-package plugin whose
// configuration carries the packaging filter list.
const filevaultPluginArtifactID = "filevault-package-maven-plugin"

// Merge folds a freshly generated fragment into this (pre-existing)
// descriptor. Sections present in both are reconciled entry-wise with
// existing entries winning; sections only the fragment has are copied in.
// Packaging filters are the exception: the fragment's filter list becomes
// the base and unmatched existing filters are appended with a retained-
// entry comment.
func (d *Descriptor) Merge(fragment *Descriptor) {
	frag := fragment.Project()

	d.mergeNamedSection(frag, []string{"properties"}, func(a, b *etree.Element) bool {
		return a.Tag == b.Tag
	})
	d.mergeNamedSection(frag, []string{"dependencies"}, SameCoordinates)
	d.mergeNamedSection(frag, []string{"dependencyManagement", "dependencies"}, SameCoordinates)
	d.mergeNamedSection(frag, []string{"build", "plugins"}, SameCoordinates)
	d.mergeNamedSection(frag, []string{"build", "pluginManagement", "plugins"}, SameCoordinates)
	d.mergePackagingFilters(frag)

	for _, name := range fragment.Modules() {
		d.AddModule(name)
	}
}

// mergeNamedSection merges the fragment's section at path into the same
// section of this descriptor, copying the fragment section wholesale when
// this descriptor lacks it.
func (d *Descriptor) mergeNamedSection(frag *etree.Element, path []string, equals func(existing, incoming *etree.Element) bool) {
	fragSection := FindSection(frag, path...)
	if fragSection == nil {
		return
	}
	section := FindSection(d.Project(), path...)
	if section == nil {
		parent := ensurePath(d.Project(), path[:len(path)-1]...)
		parent.AddChild(fragSection.Copy())
		return
	}
	MergeSection(section, fragSection.ChildElements(), equals)
}

// mergePackagingFilters reconciles the filevault plugin's filter list. The
// generated list keeps its order; existing filters with no structural match
// are carried over behind an annotation comment.
func (d *Descriptor) mergePackagingFilters(frag *etree.Element) {
	existing := packagingFilters(d.Project())
	generated := packagingFilters(frag)
	if existing == nil || generated == nil {
		return
	}

	merged := generated.Copy()
	MergeFilters(merged, existing.ChildElements())

	parent := existing.Parent()
	index := existing.Index()
	parent.RemoveChild(existing)
	parent.InsertChildAt(index, merged)
}

// packagingFilters locates the <filters> list inside the filevault plugin
// configuration, nil when any segment of the path is absent.
func packagingFilters(proj *etree.Element) *etree.Element {
	plugins := FindSection(proj, "build", "plugins")
	if plugins == nil {
		return nil
	}
	for _, plugin := range plugins.SelectElements("plugin") {
		if childText(plugin, "artifactId") == filevaultPluginArtifactID {
			return FindSection(plugin, "configuration", "filters")
		}
	}
	return nil
}

// ensurePath returns the element at the given path below start, creating
// missing segments along the way.
func ensurePath(start *etree.Element, tags ...string) *etree.Element {
	current := start
	for _, tag := range tags {
		next := current.SelectElement(tag)
		if next == nil {
			next = current.CreateElement(tag)
		}
		current = next
	}
	return current
}

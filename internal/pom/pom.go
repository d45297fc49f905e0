// Package pom reads, merges, and rewrites Maven descriptor files.
//
// The descriptor is held as an ordered element tree so sibling order
// survives parse→mutate→serialize round trips; sections the generator does
// not touch keep their hand-written order, which keeps diffs against
// existing descriptors small.
package pom

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

// Filename is the descriptor filename inside each module directory.
const Filename = "pom.xml"

// indentWidth matches the convention of hand-authored AEM descriptors.
const indentWidth = 4

// Coordinates identifies a Maven artifact.
type Coordinates struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// String returns the group:artifact:version form, omitting a blank version.
func (c Coordinates) String() string {
	if c.Version == "" {
		return c.GroupID + ":" + c.ArtifactID
	}
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// Descriptor is a parsed pom.xml.
type Descriptor struct {
	doc *etree.Document
}

// Parse parses descriptor markup from a string, typically a rendered
// template or an on-disk file's content.
func Parse(content string) (*Descriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}
	if doc.Root() == nil || doc.Root().Tag != "project" {
		return nil, fmt.Errorf("parsing descriptor: missing <project> root")
	}
	return &Descriptor{doc: doc}, nil
}

// Load reads and parses the descriptor in the given module directory.
func Load(fsys afero.Fs, dir string) (*Descriptor, error) {
	content, err := afero.ReadFile(fsys, filepath.Join(dir, Filename))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Join(dir, Filename), err)
	}
	return Parse(string(content))
}

// Exists reports whether a descriptor is present in the given directory.
func Exists(fsys afero.Fs, dir string) bool {
	ok, err := afero.Exists(fsys, filepath.Join(dir, Filename))
	return err == nil && ok
}

// Project returns the <project> root element.
func (d *Descriptor) Project() *etree.Element {
	return d.doc.Root()
}

// Coordinates returns the descriptor's own coordinates. Group id and
// version fall back to the parent reference when not declared locally, per
// Maven inheritance rules.
func (d *Descriptor) Coordinates() Coordinates {
	c := coordinatesOf(d.Project())
	parent := d.Parent()
	if c.GroupID == "" {
		c.GroupID = parent.GroupID
	}
	if c.Version == "" {
		c.Version = parent.Version
	}
	return c
}

// Parent returns the coordinates of the <parent> reference, zero-valued
// when the descriptor has none.
func (d *Descriptor) Parent() Coordinates {
	parent := d.Project().SelectElement("parent")
	if parent == nil {
		return Coordinates{}
	}
	return coordinatesOf(parent)
}

// Name returns the <name> of the project, or "" when absent.
func (d *Descriptor) Name() string {
	return childText(d.Project(), "name")
}

// Packaging returns the <packaging> of the project, or "" when absent.
func (d *Descriptor) Packaging() string {
	return childText(d.Project(), "packaging")
}

// Modules returns the declared sub-module directory names in order.
func (d *Descriptor) Modules() []string {
	modules := d.Project().SelectElement("modules")
	if modules == nil {
		return nil
	}
	var names []string
	for _, m := range modules.SelectElements("module") {
		if name := strings.TrimSpace(m.Text()); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// AddModule appends a module entry to the <modules> list, creating the list
// when absent. Adding an already-listed module is a no-op.
func (d *Descriptor) AddModule(name string) {
	for _, existing := range d.Modules() {
		if existing == name {
			return
		}
	}
	modules := d.Project().SelectElement("modules")
	if modules == nil {
		modules = d.Project().CreateElement("modules")
	}
	modules.CreateElement("module").SetText(name)
}

// Serialize renders the descriptor back to markup, normalized through
// FixSerialized.
func (d *Descriptor) Serialize() (string, error) {
	d.doc.Indent(indentWidth)
	text, err := d.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing descriptor: %w", err)
	}
	return FixSerialized(text), nil
}

// Save serializes the descriptor and writes it into the given directory.
func (d *Descriptor) Save(fsys afero.Fs, dir string) error {
	text, err := d.Serialize()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, Filename)
	if err := afero.WriteFile(fsys, path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// coordinatesOf extracts coordinates from an element's direct children.
func coordinatesOf(el *etree.Element) Coordinates {
	return Coordinates{
		GroupID:    childText(el, "groupId"),
		ArtifactID: childText(el, "artifactId"),
		Version:    childText(el, "version"),
	}
}

// childText returns the trimmed text of a direct child, "" when absent.
func childText(el *etree.Element, tag string) string {
	if el == nil {
		return ""
	}
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

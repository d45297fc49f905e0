package pom

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// defaultPluginGroupID is assumed by Maven when a <plugin> omits <groupId>.
const defaultPluginGroupID = "org.apache.maven.plugins"

// retainedFilterComment annotates filter entries carried over from an
// existing descriptor so they can be told apart from generated ones.
const retainedFilterComment = " filter retained from existing descriptor "

// FindSection descends from start through each tag in order, taking the
// first match at each level. Returns nil when any segment is absent; never
// panics on missing intermediates.
func FindSection(start *etree.Element, tags ...string) *etree.Element {
	current := start
	for _, tag := range tags {
		if current == nil {
			return nil
		}
		current = current.SelectElement(tag)
	}
	return current
}

// MergeSection appends to target each incoming entry that has no match in
// target under equals. Existing entries keep their position; new entries
// append in incoming order. Merging the same incoming list twice produces
// no further growth.
func MergeSection(target *etree.Element, incoming []*etree.Element, equals func(existing, incoming *etree.Element) bool) {
	if target == nil {
		return
	}
	for _, in := range incoming {
		if findMatch(target, in, equals) == nil {
			target.AddChild(in.Copy())
		}
	}
}

// MergeDependencies merges incoming dependency entries into target.
// Identity is the (groupId, artifactId) pair; a match suppresses insertion
// and never updates the existing entry, so manually-added fields such as
// <scope> or <exclusions> survive regeneration. When override is non-nil,
// incoming coordinates are rewritten to it before the identity check.
func MergeDependencies(target *etree.Element, incoming []*etree.Element, override *Coordinates) {
	if override != nil {
		for _, in := range incoming {
			setChildText(in, "groupId", override.GroupID)
			setChildText(in, "artifactId", override.ArtifactID)
			if override.Version != "" {
				setChildText(in, "version", override.Version)
			}
		}
	}
	MergeSection(target, incoming, SameCoordinates)
}

// RemoveDependencies removes from target every entry whose
// (groupId, artifactId) matches an entry in remove. Used to retract a
// default dependency before inserting a version-specific replacement.
func RemoveDependencies(target *etree.Element, remove []*etree.Element) {
	if target == nil {
		return
	}
	for _, r := range remove {
		for _, existing := range target.ChildElements() {
			if SameCoordinates(existing, r) {
				target.RemoveChild(existing)
			}
		}
	}
}

// MergeFilters appends to target each incoming packaging-filter entry with
// no deep-structural match in target, preceding each appended entry with a
// comment marking it as carried over.
func MergeFilters(target *etree.Element, incoming []*etree.Element) {
	if target == nil {
		return
	}
	for _, in := range incoming {
		if findMatch(target, in, DeepEqual) == nil {
			target.CreateComment(retainedFilterComment)
			target.AddChild(in.Copy())
		}
	}
}

// SameCoordinates reports whether two entries share a (groupId, artifactId)
// identity. A missing plugin groupId falls back to the Maven default.
func SameCoordinates(a, b *etree.Element) bool {
	ag, aa := entryKey(a)
	bg, bb := entryKey(b)
	return ag == bg && aa == bb
}

// DeepEqual reports full structural equality of two elements: same tag,
// same attributes, same trimmed text for leaves, and pairwise-equal child
// elements in order. Comments and whitespace are ignored.
func DeepEqual(a, b *etree.Element) bool {
	if a.Tag != b.Tag {
		return false
	}
	if !sameAttrs(a, b) {
		return false
	}
	ac, bc := a.ChildElements(), b.ChildElements()
	if len(ac) != len(bc) {
		return false
	}
	if len(ac) == 0 {
		return strings.TrimSpace(a.Text()) == strings.TrimSpace(b.Text())
	}
	for i := range ac {
		if !DeepEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func findMatch(target *etree.Element, in *etree.Element, equals func(existing, incoming *etree.Element) bool) *etree.Element {
	for _, existing := range target.ChildElements() {
		if equals(existing, in) {
			return existing
		}
	}
	return nil
}

func entryKey(el *etree.Element) (group, artifact string) {
	group = childText(el, "groupId")
	artifact = childText(el, "artifactId")
	if group == "" && el.Tag == "plugin" {
		group = defaultPluginGroupID
	}
	return group, artifact
}

func setChildText(el *etree.Element, tag, text string) {
	if text == "" {
		return
	}
	child := el.SelectElement(tag)
	if child == nil {
		child = el.CreateElement(tag)
	}
	child.SetText(text)
}

func sameAttrs(a, b *etree.Element) bool {
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	as, bs := attrPairs(a), attrPairs(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func attrPairs(el *etree.Element) []string {
	pairs := make([]string, 0, len(el.Attr))
	for _, attr := range el.Attr {
		pairs = append(pairs, attr.FullKey()+"="+attr.Value)
	}
	sort.Strings(pairs)
	return pairs
}

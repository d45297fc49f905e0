package pom

import "regexp"

// The serializer leaves a few artifacts that differ from hand-authored
// descriptors. FixSerialized normalizes exactly those known shapes with
// targeted substitutions; it is deliberately not a general pretty-printer.
var (
	// Empty leaf elements come out self-closing; ecosystem tooling and
	// hand-written descriptors use the open/close form.
	selfClosingRx = regexp.MustCompile(`<([\w.\-:]+)\s*/>`)

	// Packaging filter entries holding a single root value are written on
	// one line by convention.
	filterBlockRx = regexp.MustCompile(`<filter>\s*(<root>[^<]*</root>)\s*</filter>`)

	// A comment emitted on the same line as a preceding tag moves to its
	// own line.
	inlineCommentRx = regexp.MustCompile(`(>)[ \t]*(<!--)`)
)

// FixSerialized normalizes serializer output before it is written to disk.
// It is applied exactly once after final serialization and is idempotent,
// since some call sites chain partial merges through it.
func FixSerialized(text string) string {
	text = selfClosingRx.ReplaceAllString(text, "<$1></$1>")
	text = filterBlockRx.ReplaceAllString(text, "<filter>$1</filter>")
	text = inlineCommentRx.ReplaceAllString(text, "$1\n$2")
	return text
}

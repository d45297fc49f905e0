package output

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderTextDiff renders a line-oriented diff between two versions of a
// file, prefixing added lines with "+" and removed lines with "-". Used in
// verbose mode to show what a descriptor merge changed.
func RenderTextDiff(before, after string) string {
	if before == after {
		return StyleDim.Render("no changes")
	}

	dmp := diffmatchpatch.New()
	beforeRunes, afterRunes, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(beforeRunes, afterRunes, false), lines)

	var b strings.Builder
	for _, d := range diffs {
		for _, line := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				b.WriteString(StatusStyle(StatusCreated).Render("+ " + line))
				b.WriteString("\n")
			case diffmatchpatch.DiffDelete:
				b.WriteString(StatusStyle(StatusFailed).Render("- " + line))
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func splitDiffLines(text string) []string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

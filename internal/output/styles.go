package output

import "github.com/charmbracelet/lipgloss"

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module names, coordinates, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" file status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "merged" file status.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorDimGray is used for structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (module names, Maven coordinates).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (separators, carried-over markers).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status constants used in generation summaries.
const (
	StatusCreated   = "created"
	StatusMerged    = "merged"
	StatusUnchanged = "unchanged"
	StatusFailed    = "failed"
)

// StatusStyle returns the lipgloss style for a given file status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusMerged:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

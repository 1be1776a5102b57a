// Package style holds the colors and glyphs shared by the logger and the prompt.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Violet = lipgloss.Color("#7D69CB")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check    = "✓"
	Cross    = "✗"
	Warning  = "!"
	Arrow    = "→"
	Pointer  = "›"
	Selected = "●"
	Empty    = "○"
)

// Title renders prompt titles.
var Title = lipgloss.NewStyle().Bold(true).Foreground(Violet)

// Cursor renders the highlighted prompt row.
var Cursor = lipgloss.NewStyle().Foreground(Violet)

// Hint renders the key help below a prompt.
var Hint = lipgloss.NewStyle().Foreground(Slate)

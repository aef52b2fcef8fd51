// Package output formats CLI results as styled tables or JSON.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Format represents an output format.
type Format int

const (
	// FormatTable outputs human-readable tables.
	FormatTable Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
)

// Detect returns the format selected by the --json flag, falling back to
// STREAKD_OUTPUT and then to tables.
func Detect(jsonFlag bool) Format {
	if jsonFlag {
		return FormatJSON
	}
	if os.Getenv("STREAKD_OUTPUT") == "json" {
		return FormatJSON
	}
	return FormatTable
}

// DisableColor strips all styling from table output and forces lipgloss to
// an ASCII profile so nested renderers stay plain too.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
	categoryStyles = map[string]lipgloss.Style{}
}

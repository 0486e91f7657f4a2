package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// EntryPath styles news entry file names in listings.
	EntryPath lipgloss.Style

	// StatusSuccess and StatusFailed carry their glyphs, rendered via
	// String().
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// newStyles builds the style set against an explicit termenv profile so
// rendering never depends on the ambient terminal: ANSI256 when color
// is wanted, Ascii otherwise. Under the Ascii profile termenv strips
// every escape sequence, which keeps piped and captured output clean.
func newStyles(w io.Writer, colored bool) Styles {
	profile := termenv.Ascii
	if colored {
		profile = termenv.ANSI256
	}
	lr := lipgloss.NewRenderer(w, termenv.WithProfile(profile))

	return Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Header2: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("241")),

		Success: lr.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("196")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("39")),

		EntryPath: lr.NewStyle().Foreground(lipgloss.Color("81")),

		StatusSuccess: lr.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(lipgloss.Color("196")).SetString("✗"),
	}
}

package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the TUI.
type Styles struct {
	// Frame
	Frame     lipgloss.Style
	StatusBar lipgloss.Style
	Filter    lipgloss.Style

	// Rows
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowMatch    lipgloss.Style
	Skeleton    lipgloss.Style
	Loading     lipgloss.Style
	Spinner     lipgloss.Style
	RowError    lipgloss.Style

	// Decorations
	Header lipgloss.Style
	Footer lipgloss.Style

	// Misc
	Muted lipgloss.Style
}

// Themes lists the accepted theme names.
var Themes = []string{"default", "mono"}

// ForTheme returns the styles for a named theme.
func ForTheme(name string) (Styles, error) {
	switch name {
	case "", "default":
		return DefaultStyles(), nil
	case "mono":
		return MonoStyles(), nil
	default:
		return Styles{}, fmt.Errorf("unknown theme %q", name)
	}
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Filter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		RowSelected: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")),
		RowMatch: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Magenta for matched chars
			Bold(true),
		Skeleton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		Loading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")), // Muted yellow
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")),
		RowError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// MonoStyles returns a style set without colors, for terminals that do not
// render them well.
func MonoStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Frame:       plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		StatusBar:   plain,
		Filter:      plain,
		Row:         plain,
		RowSelected: plain.Reverse(true),
		RowMatch:    plain.Underline(true),
		Skeleton:    plain.Faint(true),
		Loading:     plain,
		Spinner:     plain,
		RowError:    plain.Bold(true),
		Header:      plain.Bold(true),
		Footer:      plain.Faint(true),
		Muted:       plain.Faint(true),
	}
}

package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// VisibleLen returns the visible display width of a string (excluding ANSI codes).
func VisibleLen(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Truncate shortens s to at most width visible cells, keeping escape
// sequences intact and marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if VisibleLen(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight truncates or pads s with spaces to exactly width visible cells.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - VisibleLen(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// SingleLine collapses newlines so a value always renders on one row.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}

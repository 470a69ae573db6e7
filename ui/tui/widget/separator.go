package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Compile-time check that Separator implements Widget
var _ Widget = (*Separator)(nil)

// Separator renders a horizontal line.
type Separator struct {
	width int
	style lipgloss.Style
}

// NewSeparator creates a new separator widget drawn in style.
func NewSeparator(style lipgloss.Style) *Separator {
	return &Separator{style: style}
}

// View implements Widget.
func (s *Separator) View() string {
	return s.style.Render(strings.Repeat("─", s.width))
}

// SetSize implements Widget.
func (s *Separator) SetSize(width, height int) {
	s.width = width
}

// SetWidth implements layout.Renderer.
func (s *Separator) SetWidth(w int) {
	s.width = w
}

// Height implements layout.Renderer.
func (s *Separator) Height() int {
	return 1
}

// PreferredHeight implements Widget.
func (s *Separator) PreferredHeight() int {
	return 1
}

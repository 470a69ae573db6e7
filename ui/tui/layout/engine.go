package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dock represents renderers in a dock (top or bottom).
type Dock struct {
	Renderers []Renderer
}

// Add appends r to the dock.
func (d *Dock) Add(r Renderer) {
	d.Renderers = append(d.Renderers, r)
}

// Height returns the total height of all renderers in the dock.
func (d *Dock) Height() int {
	h := 0
	for _, r := range d.Renderers {
		h += r.Height()
	}
	return h
}

// SetWidth sets the width on all renderers in the dock.
func (d *Dock) SetWidth(w int) {
	for _, r := range d.Renderers {
		r.SetWidth(w)
	}
}

// View returns the rendered view of all visible renderers concatenated.
func (d *Dock) View() string {
	var parts []string
	for _, r := range d.Renderers {
		if r.Height() > 0 {
			parts = append(parts, r.View())
		}
	}
	return strings.Join(parts, "\n")
}

// Engine calculates layout for top dock, body, and bottom dock.
type Engine struct {
	width   int
	height  int
	maxBody int
}

// NewEngine creates a new layout engine. maxBody caps the body height;
// zero means the body takes all remaining rows.
func NewEngine(maxBody int) *Engine {
	return &Engine{maxBody: maxBody}
}

// SetSize sets the total available size.
func (e *Engine) SetSize(width, height int) {
	e.width = width
	e.height = height
}

// Width returns the current width.
func (e *Engine) Width() int {
	return e.width
}

// Calculate computes layout given top and bottom docks.
// Sets width on all renderers and returns body height.
func (e *Engine) Calculate(top, bottom *Dock) int {
	top.SetWidth(e.width)
	bottom.SetWidth(e.width)

	bodyHeight := e.height - top.Height() - bottom.Height()
	if e.maxBody > 0 && bodyHeight > e.maxBody {
		bodyHeight = e.maxBody
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	return bodyHeight
}

// Compose stacks the top dock, the body and the bottom dock. Empty docks
// take no rows.
func Compose(top *Dock, body string, bottom *Dock) string {
	var parts []string
	if v := top.View(); v != "" {
		parts = append(parts, v)
	}
	parts = append(parts, body)
	if v := bottom.View(); v != "" {
		parts = append(parts, v)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

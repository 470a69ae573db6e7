package widget

import (
	"fmt"
	"strings"

	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/style"
	"github.com/drake/gridsource/ui/tui/util"
)

// Status shows where the selection is and which mode the view is in.
type Status struct {
	path     source.IndexPath
	hasPath  bool
	sections int
	rows     int
	filter   string
	loading  int
	width    int
	styles   style.Styles
}

// NewStatus creates a new status widget.
func NewStatus(styles style.Styles) *Status {
	return &Status{styles: styles}
}

// View implements Widget.
func (s *Status) View() string {
	// Left: position
	left := s.styles.Muted.Render("no selection")
	if s.hasPath {
		left = s.styles.StatusBar.Render(fmt.Sprintf("section %d/%d  row %d/%d",
			s.path.Section+1, s.sections, s.path.Row+1, s.rows))
	}

	// Right: filter and paging state
	var parts []string
	if s.filter != "" {
		parts = append(parts, "filter: "+s.filter)
	}
	if s.loading > 0 {
		parts = append(parts, fmt.Sprintf("loading %d", s.loading))
	}
	right := s.styles.Muted.Render(strings.Join(parts, "  "))

	padding := s.width - util.VisibleLen(left) - util.VisibleLen(right) - 2
	if padding < 1 {
		padding = 1
	}

	return util.Truncate(left+strings.Repeat(" ", padding)+right, s.width)
}

// SetPosition updates the selection shown. rows is the row count of the
// selected section.
func (s *Status) SetPosition(path source.IndexPath, ok bool, sections, rows int) {
	s.path = path
	s.hasPath = ok
	s.sections = sections
	s.rows = rows
}

// SetFilter shows the active filter query; "" hides it.
func (s *Status) SetFilter(query string) {
	s.filter = query
}

// SetLoading shows how many sections are waiting for more items.
func (s *Status) SetLoading(n int) {
	s.loading = n
}

// SetWidth implements layout.Renderer.
func (s *Status) SetWidth(w int) {
	s.width = w
}

// Height implements layout.Renderer.
func (s *Status) Height() int {
	return 1
}

package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/gridsource/internal/logging"
	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/style"
)

// Source is what a Collection renders.
type Source interface {
	source.Provider
	source.Binder
}

// LoadingSource is implemented by sources that can say which row of a
// section is its loading row. Collections over other sources have none.
type LoadingSource interface {
	LoadingRow(section int) (int, bool)
}

// rowKind distinguishes flattened rows.
type rowKind int

const (
	rowCell rowKind = iota
	rowHeader
	rowFooter
)

// row is one line of the flattened layout.
type row struct {
	kind rowKind
	path source.IndexPath
}

// CollectionConfig holds collection configuration.
type CollectionConfig struct {
	EmptyText string // Text to show when there are no rows (default: "No items")
}

// Collection renders every section of a Source as a vertical list: the
// header, the rows and the footer of each section in turn. Only rows are
// selectable.
type Collection struct {
	src      Source
	registry *Registry
	config   CollectionConfig
	styles   style.Styles
	spinner  spinner.Model
	log      *logging.Logger

	rows         []row
	matches      map[source.IndexPath][]int
	selected     int // index into rows; -1 when nothing is selectable
	scrollOff    int
	width        int
	height       int
	rendered     []string
	loadingPaths []source.IndexPath
}

var _ Widget = (*Collection)(nil)

// NewCollection creates a collection over src.
func NewCollection(src Source, registry *Registry, config CollectionConfig, styles style.Styles, log *logging.Logger) *Collection {
	if config.EmptyText == "" {
		config.EmptyText = "No items"
	}
	if log == nil {
		log = logging.NopLogger()
	}
	c := &Collection{
		src:      src,
		registry: registry,
		config:   config,
		styles:   styles,
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		log:      log.WithComponent("collection"),
	}
	c.Reload()
	return c
}

// Init starts the spinner used by loading rows.
func (c *Collection) Init() tea.Cmd {
	return c.spinner.Tick
}

// Update advances the spinner.
func (c *Collection) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return cmd
}

// Source returns the rendered source.
func (c *Collection) Source() Source {
	return c.src
}

// SetSource replaces the source and reloads.
func (c *Collection) SetSource(src Source) {
	c.src = src
	c.registry.Purge()
	c.Reload()
}

// SetMatches sets fuzzy-match positions to highlight, keyed by row.
func (c *Collection) SetMatches(matches map[source.IndexPath][]int) {
	c.matches = matches
}

// Reload re-queries the source and rebuilds the flattened layout. The
// selection is kept on the same path when it still exists.
func (c *Collection) Reload() {
	prev, hadPrev := c.Selected()

	c.rows = c.rows[:0]
	for s := 0; s < c.src.SectionCount(); s++ {
		if _, ok, err := c.src.ResolveDecoration(source.KindHeader, source.IndexPath{Section: s}); err == nil && ok {
			c.rows = append(c.rows, row{kind: rowHeader, path: source.IndexPath{Section: s}})
		}

		n, err := c.src.RowCount(s)
		if err != nil {
			c.log.Error("row count failed", "section", s, "error", err)
			continue
		}
		for r := 0; r < n; r++ {
			c.rows = append(c.rows, row{kind: rowCell, path: source.IndexPath{Section: s, Row: r}})
		}

		if _, ok, err := c.src.ResolveDecoration(source.KindFooter, source.IndexPath{Section: s}); err == nil && ok {
			c.rows = append(c.rows, row{kind: rowFooter, path: source.IndexPath{Section: s}})
		}
	}

	c.selected = -1
	if hadPrev {
		for i, r := range c.rows {
			if r.kind == rowCell && r.path == prev {
				c.selected = i
				break
			}
		}
	}
	if c.selected < 0 {
		c.selected = c.nextCell(-1, 1, false)
	}
	c.adjustScroll()
}

// nextCell returns the index of the next selectable row after from in
// direction dir, or -1. With wrap set the search continues from the other
// end.
func (c *Collection) nextCell(from, dir int, wrap bool) int {
	n := len(c.rows)
	for step := 1; step <= n; step++ {
		i := from + dir*step
		if wrap {
			i = ((i % n) + n) % n
		} else if i < 0 || i >= n {
			return -1
		}
		if c.rows[i].kind == rowCell {
			return i
		}
	}
	return -1
}

// SelectUp moves selection up with wraparound.
func (c *Collection) SelectUp() {
	c.move(-1, true)
}

// SelectDown moves selection down with wraparound.
func (c *Collection) SelectDown() {
	c.move(1, true)
}

// PageUp moves selection up by one screen without wrapping.
func (c *Collection) PageUp() {
	for i := 0; i < max(1, c.height-1); i++ {
		c.move(-1, false)
	}
}

// PageDown moves selection down by one screen without wrapping.
func (c *Collection) PageDown() {
	for i := 0; i < max(1, c.height-1); i++ {
		c.move(1, false)
	}
}

// Home selects the first row.
func (c *Collection) Home() {
	if i := c.nextCell(-1, 1, false); i >= 0 {
		c.selected = i
	}
	c.scrollOff = 0
	c.adjustScroll()
}

// End selects the last row.
func (c *Collection) End() {
	if i := c.nextCell(len(c.rows), -1, false); i >= 0 {
		c.selected = i
	}
	c.adjustScroll()
}

func (c *Collection) move(dir int, wrap bool) {
	if c.selected < 0 {
		return
	}
	if i := c.nextCell(c.selected, dir, wrap); i >= 0 {
		c.selected = i
	}
	c.adjustScroll()
}

func (c *Collection) adjustScroll() {
	if c.height <= 0 || c.selected < 0 {
		return
	}
	// Keep a header directly above the selection on screen.
	top := c.selected
	if top > 0 && c.rows[top-1].kind == rowHeader {
		top--
	}
	if top < c.scrollOff {
		c.scrollOff = top
	} else if c.selected >= c.scrollOff+c.height {
		c.scrollOff = c.selected - c.height + 1
	}
	c.scrollOff = max(0, min(c.scrollOff, len(c.rows)-c.height))
}

// Selected returns the path of the selected row.
func (c *Collection) Selected() (source.IndexPath, bool) {
	if c.selected < 0 || c.selected >= len(c.rows) {
		return source.IndexPath{}, false
	}
	return c.rows[c.selected].path, true
}

// SelectedEntry resolves the selected row.
func (c *Collection) SelectedEntry() (source.IndexPath, source.Entry, error) {
	path, ok := c.Selected()
	if !ok {
		return path, source.Entry{}, source.ErrIndexOutOfRange
	}
	entry, err := c.src.ResolveCell(path)
	return path, entry, err
}

// Len returns the number of flattened lines, decorations included.
func (c *Collection) Len() int {
	return len(c.rows)
}

// SetSize implements Widget.
func (c *Collection) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.adjustScroll()
}

// PreferredHeight implements Widget.
func (c *Collection) PreferredHeight() int {
	return max(1, len(c.rows))
}

// Layout binds the rows inside the scroll window and caches their rendered
// lines. It returns the paths of loading rows that are on screen.
func (c *Collection) Layout() []source.IndexPath {
	c.rendered = c.rendered[:0]
	c.loadingPaths = c.loadingPaths[:0]

	if len(c.rows) == 0 {
		c.rendered = append(c.rendered, c.styles.Muted.Render("  "+c.config.EmptyText))
		return nil
	}

	end := len(c.rows)
	if c.height > 0 {
		end = min(end, c.scrollOff+c.height)
	}

	for i := c.scrollOff; i < end; i++ {
		r := c.rows[i]
		el, err := c.bind(r)
		if err != nil {
			c.log.Error("bind failed", "section", r.path.Section, "row", r.path.Row, "error", err)
			el = &ErrorCell{Err: err}
		}

		cell, ok := el.(Cell)
		if !ok {
			c.log.Warn("element is not a cell", "section", r.path.Section, "row", r.path.Row)
			continue
		}
		if r.kind == rowCell && c.isLoadingRow(r.path) {
			c.loadingPaths = append(c.loadingPaths, r.path)
		}

		c.rendered = append(c.rendered, cell.Render(RenderContext{
			Width:    c.width,
			Selected: i == c.selected,
			Styles:   c.styles,
			Spinner:  c.spinner.View(),
			Matches:  c.matches[r.path],
		}))
	}

	return c.loadingPaths
}

func (c *Collection) isLoadingRow(path source.IndexPath) bool {
	ls, ok := c.src.(LoadingSource)
	if !ok {
		return false
	}
	row, ok := ls.LoadingRow(path.Section)
	return ok && row == path.Row
}

func (c *Collection) bind(r row) (any, error) {
	switch r.kind {
	case rowHeader:
		return c.src.Decoration(c.registry, source.KindHeader, r.path)
	case rowFooter:
		return c.src.Decoration(c.registry, source.KindFooter, r.path)
	default:
		return c.src.Cell(c.registry, r.path)
	}
}

// View implements Widget. It shows the lines produced by the last Layout.
func (c *Collection) View() string {
	return strings.Join(c.rendered, "\n")
}

// AtLoadingRow reports whether the selected row is its section's loading
// row and was on screen in the last Layout.
func (c *Collection) AtLoadingRow() bool {
	path, ok := c.Selected()
	if !ok {
		return false
	}
	for _, p := range c.loadingPaths {
		if p == path {
			return true
		}
	}
	return false
}

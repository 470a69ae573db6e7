package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/gridsource/event"
	"github.com/drake/gridsource/internal/logging"
	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/layout"
	"github.com/drake/gridsource/ui/tui/style"
	"github.com/drake/gridsource/ui/tui/widget"
)

// AppendItemsMsg delivers a page of items for a section. Done removes the
// section's loading row.
type AppendItemsMsg struct {
	Section int
	Items   []any
	Done    bool
}

// LoadFailedMsg reports that loading more items for a section failed. The
// loading row stays, but it is only requested again when the user selects
// it.
type LoadFailedMsg struct {
	Section int
	Err     error
}

// ReloadMsg asks the model to re-query its source after the host changed
// it in place.
type ReloadMsg struct{}

// Options configures the model.
type Options struct {
	MaxVisible int  // Cap on collection rows; 0 uses the whole terminal
	ShowStatus bool // Show the position line
	Styles     style.Styles
	Keys       KeyMap
	EmptyText  string
}

// DefaultOptions returns the default model options.
func DefaultOptions() Options {
	return Options{
		ShowStatus: true,
		Styles:     style.DefaultStyles(),
		Keys:       DefaultKeyMap(),
	}
}

// filterBar shows the filter prompt below the collection.
type filterBar struct {
	input   textinput.Model
	visible bool
}

func (f *filterBar) SetWidth(w int) {
	f.input.Width = max(0, w-len(f.input.Prompt)-1)
}

func (f *filterBar) Height() int {
	if f.visible {
		return 1
	}
	return 0
}

func (f *filterBar) View() string {
	return f.input.View()
}

// Model is the main Bubble Tea model: a collection over a grouped source,
// with a status line and a fuzzy filter.
type Model struct {
	// Layout
	engine    *layout.Engine
	separator *widget.Separator
	status    *widget.Status
	filterBar *filterBar

	// Widgets
	collection *widget.Collection
	registry   *widget.Registry
	styles     style.Styles
	keys       KeyMap
	showStatus bool

	// Source state
	base    *source.Grouped
	filter  *filterResult // nil when no filter is applied
	pending map[int]bool  // sections with an outstanding LoadMore
	failed  map[int]bool  // sections whose last LoadMore failed

	// State
	typing      bool // filter prompt has focus
	width       int
	height      int
	outbound    chan<- event.Event
	log         *logging.Logger
	quitting    bool
	initialized bool
}

// NewModel creates a new TUI model over base. Events for the host are sent
// on outbound, which must not block for long.
func NewModel(base *source.Grouped, registry *widget.Registry, opts Options, outbound chan<- event.Event, log *logging.Logger) Model {
	if log == nil {
		log = logging.NopLogger()
	}
	log = log.WithComponent("tui")

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "filter"
	input.PromptStyle = opts.Styles.Filter
	input.TextStyle = opts.Styles.Filter

	return Model{
		engine:     layout.NewEngine(opts.MaxVisible),
		separator:  widget.NewSeparator(opts.Styles.Muted),
		status:     widget.NewStatus(opts.Styles),
		filterBar:  &filterBar{input: input},
		collection: widget.NewCollection(base, registry, widget.CollectionConfig{EmptyText: opts.EmptyText}, opts.Styles, log),
		registry:   registry,
		styles:     opts.Styles,
		keys:       opts.Keys,
		showStatus: opts.ShowStatus,
		base:       base,
		pending:    make(map[int]bool),
		failed:     make(map[int]bool),
		outbound:   outbound,
		log:        log,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.collection.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetSize(msg.Width, msg.Height)
		m.initialized = true

	case AppendItemsMsg:
		m.appendItems(msg)

	case LoadFailedMsg:
		m.log.Error("load more failed", "section", msg.Section, "error", msg.Err)
		delete(m.pending, msg.Section)
		m.failed[msg.Section] = true

	case ReloadMsg:
		m.reload()

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, cmd
		}

	default:
		cmd = m.collection.Update(msg)
		if m.typing {
			var inputCmd tea.Cmd
			m.filterBar.input, inputCmd = m.filterBar.input.Update(msg)
			cmd = tea.Batch(cmd, inputCmd)
		}
	}

	m.refresh()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.typing {
		return m.handleFilterKey(msg), false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.send(event.Event{Type: event.Quit})
		return tea.Quit, true
	case key.Matches(msg, m.keys.Up):
		m.collection.SelectUp()
	case key.Matches(msg, m.keys.Down):
		m.collection.SelectDown()
	case key.Matches(msg, m.keys.PageUp):
		m.collection.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.collection.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.collection.Home()
	case key.Matches(msg, m.keys.End):
		m.collection.End()
	case key.Matches(msg, m.keys.Select):
		m.selectRow()
	case key.Matches(msg, m.keys.Filter):
		return m.startFilter(), false
	case key.Matches(msg, m.keys.Clear):
		m.clearFilter()
	}
	return nil, false
}

// handleFilterKey routes keys while the filter prompt has focus. Letters
// go to the prompt, so only non-printing keys navigate.
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.clearFilter()
		return nil
	case tea.KeyEnter:
		m.typing = false
		m.filterBar.input.Blur()
		return nil
	case tea.KeyUp:
		m.collection.SelectUp()
		return nil
	case tea.KeyDown:
		m.collection.SelectDown()
		return nil
	}

	old := m.filterBar.input.Value()
	var cmd tea.Cmd
	m.filterBar.input, cmd = m.filterBar.input.Update(msg)
	if query := m.filterBar.input.Value(); query != old {
		m.applyFilter(query)
	}
	return cmd
}

func (m *Model) startFilter() tea.Cmd {
	m.typing = true
	m.filterBar.visible = true
	if m.filter == nil {
		if path, ok := m.collection.Selected(); ok {
			m.filter = &filterResult{section: path.Section}
		} else {
			m.filter = &filterResult{}
		}
	}
	return m.filterBar.input.Focus()
}

// applyFilter narrows the section that was selected when filtering started.
func (m *Model) applyFilter(query string) {
	section := 0
	if m.filter != nil {
		section = m.filter.section
	}

	res, err := filterSection(m.base, section, query)
	if err != nil {
		m.log.Warn("filter failed", "section", section, "error", err)
		return
	}
	m.filter = res
	m.collection.SetSource(res.src)
	m.collection.SetMatches(res.matches)
}

func (m *Model) clearFilter() {
	m.typing = false
	m.filterBar.visible = false
	m.filterBar.input.Blur()
	m.filterBar.input.Reset()
	if m.filter == nil {
		return
	}
	m.filter = nil
	m.collection.SetMatches(nil)
	m.collection.SetSource(m.base)
}

// reload re-queries the base source, re-applying any active filter.
func (m *Model) reload() {
	if m.filter != nil && m.filter.src != nil {
		m.applyFilter(m.filterBar.input.Value())
		return
	}
	m.collection.Reload()
}

func (m *Model) appendItems(msg AppendItemsMsg) {
	delete(m.pending, msg.Section)
	delete(m.failed, msg.Section)
	log := m.log.With("section", msg.Section)

	l, err := m.base.Source(msg.Section)
	if err != nil {
		log.Warn("append to unknown section", "error", err)
		return
	}

	cfg := l.Config()
	l.SetItems(append(cfg.Items[:len(cfg.Items):len(cfg.Items)], msg.Items...))
	if msg.Done {
		l.SetLoadingMore("")
	}
	log.Debug("items appended", "count", len(msg.Items), "done", msg.Done)
	m.reload()
}

func (m *Model) selectRow() {
	path, entry, err := m.collection.SelectedEntry()
	if err != nil {
		return
	}
	if m.filter != nil && m.filter.src != nil {
		path = m.filter.origin(path)
	}
	if m.collection.AtLoadingRow() {
		delete(m.failed, path.Section)
		m.requestMore(path)
		return
	}
	m.send(event.Event{Type: event.Selected, Path: path, Entry: entry})
}

// requestMore asks the host for the next page of path's section, once per
// outstanding request.
func (m *Model) requestMore(path source.IndexPath) {
	if m.pending[path.Section] {
		return
	}
	entry, err := m.base.ResolveCell(path)
	if err != nil {
		m.log.Warn("loading row vanished", "path", path.String(), "error", err)
		return
	}
	m.pending[path.Section] = true
	m.send(event.Event{Type: event.LoadMore, Path: path, Entry: entry})
}

func (m *Model) send(ev event.Event) {
	if m.outbound == nil {
		return
	}
	m.outbound <- ev
}

func (m *Model) bottomDock() *layout.Dock {
	dock := &layout.Dock{}
	dock.Add(m.separator)
	if m.showStatus {
		dock.Add(m.status)
	}
	dock.Add(m.filterBar)
	return dock
}

// refresh lays out the collection for the current size and requests more
// items for any loading row that came on screen. Sections that failed wait
// for the user to select their loading row.
func (m *Model) refresh() {
	if !m.initialized || m.quitting {
		return
	}

	height := m.engine.Calculate(&layout.Dock{}, m.bottomDock())
	m.collection.SetSize(m.engine.Width(), height)

	for _, path := range m.collection.Layout() {
		if m.failed[path.Section] {
			continue
		}
		m.requestMore(path)
	}
	m.updateStatus()
}

func (m *Model) updateStatus() {
	src := m.collection.Source()
	path, ok := m.collection.Selected()
	rows := 0
	if ok {
		rows, _ = src.RowCount(path.Section)
	}
	m.status.SetPosition(path, ok, src.SectionCount(), rows)
	m.status.SetLoading(len(m.pending))
	if m.filter != nil && !m.typing {
		m.status.SetFilter(m.filterBar.input.Value())
	} else {
		m.status.SetFilter("")
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return ""
	}

	top := &layout.Dock{}
	bottom := m.bottomDock()
	m.engine.Calculate(top, bottom)

	return layout.Compose(top, m.collection.View(), bottom)
}

// Pending reports whether a LoadMore for section is outstanding.
func (m Model) Pending(section int) bool {
	return m.pending[section]
}

// Failed reports whether the last LoadMore for section failed and has not
// been retried.
func (m Model) Failed(section int) bool {
	return m.failed[section]
}

// Selected returns the selected path in the unfiltered source.
func (m Model) Selected() (source.IndexPath, bool) {
	path, ok := m.collection.Selected()
	if ok && m.filter != nil && m.filter.src != nil {
		path = m.filter.origin(path)
	}
	return path, ok
}

package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/gridsource/event"
	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/style"
	"github.com/drake/gridsource/ui/tui/widget"
)

// SectionModel shows a single section in a bubbles list, which brings its
// own filtering, pagination and help. Loading and paging are not
// supported here; use Model for that.
type SectionModel struct {
	list     list.Model
	src      widget.Source
	section  int
	outbound chan<- event.Event
}

// NewSectionModel creates a list view of one section of src.
func NewSectionModel(src widget.Source, section int, registry *widget.Registry, styles style.Styles, outbound chan<- event.Event) (SectionModel, error) {
	l, err := widget.NewSectionList(src, section, registry, styles, 0, 0)
	if err != nil {
		return SectionModel{}, err
	}
	return SectionModel{list: l, src: src, section: section, outbound: outbound}, nil
}

// WithOutbound returns a copy of m that sends its events on outbound.
func (m SectionModel) WithOutbound(outbound chan<- event.Event) SectionModel {
	m.outbound = outbound
	return m
}

// Init implements tea.Model.
func (m SectionModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(widget.ListItem); ok && m.outbound != nil {
				m.outbound <- event.Event{Type: event.Selected, Path: item.Path, Entry: item.Entry}
			}
			return m, nil
		case "q", "ctrl+c":
			if m.outbound != nil {
				m.outbound <- event.Event{Type: event.Quit}
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m SectionModel) View() string {
	return m.list.View()
}

// Selected returns the path of the highlighted item.
func (m SectionModel) Selected() (source.IndexPath, bool) {
	item, ok := m.list.SelectedItem().(widget.ListItem)
	return item.Path, ok
}

package widget

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/style"
)

// ListItem is one resolved row of a section, as a bubbles list item.
type ListItem struct {
	Path  source.IndexPath
	Entry source.Entry
}

// FilterValue implements list.Item.
func (i ListItem) FilterValue() string {
	return Text(i.Entry.Item)
}

// ListItems resolves every row of section into list items.
func ListItems(src source.Provider, section int) ([]list.Item, error) {
	n, err := src.RowCount(section)
	if err != nil {
		return nil, err
	}
	items := make([]list.Item, 0, n)
	for r := 0; r < n; r++ {
		path := source.IndexPath{Section: section, Row: r}
		entry, err := src.ResolveCell(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %v: %w", path, err)
		}
		items = append(items, ListItem{Path: path, Entry: entry})
	}
	return items, nil
}

// ListDelegate draws bubbles list items with cells dequeued from a
// Registry, so one section of a source can be shown in a list.Model.
type ListDelegate struct {
	Binder   source.Binder
	Registry *Registry
	Styles   style.Styles
}

var _ list.ItemDelegate = ListDelegate{}

// Height implements list.ItemDelegate.
func (d ListDelegate) Height() int {
	return 1
}

// Spacing implements list.ItemDelegate.
func (d ListDelegate) Spacing() int {
	return 0
}

// Update implements list.ItemDelegate.
func (d ListDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render implements list.ItemDelegate.
func (d ListDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(ListItem)
	if !ok {
		return
	}

	el, err := d.Binder.Cell(d.Registry, li.Path)
	if err != nil {
		el = &ErrorCell{Err: err}
	}
	cell, ok := el.(Cell)
	if !ok {
		return
	}

	fmt.Fprint(w, cell.Render(RenderContext{
		Width:    m.Width(),
		Selected: index == m.Index(),
		Styles:   d.Styles,
	}))
}

// NewSectionList builds a bubbles list showing one section of src.
func NewSectionList(src Source, section int, registry *Registry, styles style.Styles, width, height int) (list.Model, error) {
	items, err := ListItems(src, section)
	if err != nil {
		return list.Model{}, err
	}

	l := list.New(items, ListDelegate{Binder: src, Registry: registry, Styles: styles}, width, height)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	if entry, ok, _ := src.ResolveDecoration(source.KindHeader, source.IndexPath{Section: section}); ok {
		l.Title = Text(entry.Item)
	} else {
		l.Title = fmt.Sprintf("Section %d", section+1)
	}
	return l, nil
}

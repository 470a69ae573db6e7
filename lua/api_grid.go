package lua

import (
	glua "github.com/yuin/gopher-lua"

	"github.com/drake/gridsource/source"
)

const (
	// DefaultCellIdentifier is used when a section does not name its cell.
	DefaultCellIdentifier = "Cell"
	// DefaultHeaderIdentifier is used for headers given as plain text.
	DefaultHeaderIdentifier = "Header"
	// DefaultFooterIdentifier is used for footers given as plain text.
	DefaultFooterIdentifier = "Footer"
)

// registerGridFuncs registers the grid.* API.
func (e *Engine) registerGridFuncs() {
	// grid.section{cell=, items=, static=, count=, loading=, header=, footer=}:
	// Declare a section and return its 1-based index
	e.L.SetField(e.gridTable, "section", e.L.NewFunction(func(L *glua.LState) int {
		if e.frozen {
			L.RaiseError("sections are read-only while the view is running")
		}
		opts := L.CheckTable(1)
		cfg, err := sectionConfig(L, opts)
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		e.sections = append(e.sections, source.NewList(cfg))
		L.Push(glua.LNumber(len(e.sections)))
		return 1
	}))

	// grid.set_items(section, items): Replace a section's items
	e.L.SetField(e.gridTable, "set_items", e.L.NewFunction(func(L *glua.LState) int {
		idx := e.checkSection(L, 1)
		items := arrayToGo(L.CheckTable(2))
		e.sections[idx].SetItems(items)
		e.host.SectionChanged(idx)
		return 0
	}))

	// grid.set_loading(section, identifier|nil): Show or hide the loading row
	e.L.SetField(e.gridTable, "set_loading", e.L.NewFunction(func(L *glua.LState) int {
		idx := e.checkSection(L, 1)
		e.sections[idx].SetLoadingMore(L.OptString(2, ""))
		e.host.SectionChanged(idx)
		return 0
	}))

	// grid.count(section): Number of rows the section currently resolves
	e.L.SetField(e.gridTable, "count", e.L.NewFunction(func(L *glua.LState) int {
		idx := e.checkSection(L, 1)
		n, _ := e.sections[idx].RowCount(0)
		L.Push(glua.LNumber(n))
		return 1
	}))

	// grid.on_load_more(fn): fn(section, loaded) -> items, done
	e.L.SetField(e.gridTable, "on_load_more", e.L.NewFunction(func(L *glua.LState) int {
		e.onLoadMore = L.OptFunction(1, nil)
		return 0
	}))

	// grid.on_select(fn): fn(section, row, item, identifier)
	e.L.SetField(e.gridTable, "on_select", e.L.NewFunction(func(L *glua.LState) int {
		e.onSelect = L.OptFunction(1, nil)
		return 0
	}))

	// grid.log(msg): Write to the application log
	e.L.SetField(e.gridTable, "log", e.L.NewFunction(func(L *glua.LState) int {
		e.host.Log(L.CheckString(1))
		return 0
	}))
}

// checkSection reads a 1-based section argument and returns it 0-based.
func (e *Engine) checkSection(L *glua.LState, n int) int {
	if e.frozen {
		L.RaiseError("sections are read-only while the view is running")
	}
	idx := L.CheckInt(n) - 1
	if idx < 0 || idx >= len(e.sections) {
		L.ArgError(n, "no such section")
	}
	return idx
}

// sectionConfig reads a grid.section options table.
func sectionConfig(L *glua.LState, opts *glua.LTable) (source.ListConfig, error) {
	cfg := source.ListConfig{CellIdentifier: DefaultCellIdentifier}

	if v, ok := opts.RawGetString("cell").(glua.LString); ok {
		cfg.CellIdentifier = string(v)
	}
	if v, ok := opts.RawGetString("loading").(glua.LString); ok {
		cfg.LoadingMoreIdentifier = string(v)
	}

	switch v := opts.RawGetString("items").(type) {
	case *glua.LTable:
		cfg.Items = arrayToGo(v)
	case *glua.LNilType:
	default:
		return cfg, errorf("items must be a table, got %s", v.Type())
	}

	switch v := opts.RawGetString("count").(type) {
	case glua.LNumber:
		cfg.NumberOfItems = source.Count(int(v))
	case *glua.LNilType:
	default:
		return cfg, errorf("count must be a number, got %s", v.Type())
	}

	if v, ok := opts.RawGetString("static").(*glua.LTable); ok {
		for i := 1; i <= v.Len(); i++ {
			row, ok := v.RawGetInt(i).(*glua.LTable)
			if !ok {
				return cfg, errorf("static[%d] must be a table", i)
			}
			entry, err := entryFrom(row, cfg.CellIdentifier)
			if err != nil {
				return cfg, errorf("static[%d]: %s", i, err)
			}
			cfg.StaticItems = append(cfg.StaticItems, entry)
		}
	}

	var err error
	if cfg.Header, err = decoration(opts.RawGetString("header"), DefaultHeaderIdentifier); err != nil {
		return cfg, errorf("header: %s", err)
	}
	if cfg.Footer, err = decoration(opts.RawGetString("footer"), DefaultFooterIdentifier); err != nil {
		return cfg, errorf("footer: %s", err)
	}

	return cfg, nil
}

// entryFrom reads {id=, item=} into an Entry.
func entryFrom(t *glua.LTable, defaultID string) (source.Entry, error) {
	entry := source.Entry{Identifier: defaultID, Item: toGo(t.RawGetString("item"))}
	switch id := t.RawGetString("id").(type) {
	case glua.LString:
		entry.Identifier = string(id)
	case *glua.LNilType:
	default:
		return entry, errorf("id must be a string, got %s", id.Type())
	}
	return entry, nil
}

// decoration reads a header or footer given either as text or as
// {id=, item=}.
func decoration(v glua.LValue, defaultID string) (*source.Entry, error) {
	switch v := v.(type) {
	case *glua.LNilType:
		return nil, nil
	case glua.LString:
		return &source.Entry{Identifier: defaultID, Item: string(v)}, nil
	case *glua.LTable:
		entry, err := entryFrom(v, defaultID)
		return &entry, err
	default:
		return nil, errorf("expected string or table, got %s", v.Type())
	}
}

package source

// ListConfig is the caller-facing configuration of a List. Field priority
// for row content is StaticItems, then NumberOfItems, then Items.
type ListConfig struct {
	// Items are the data-driven rows, in display order.
	Items []any

	// StaticItems, when non-empty, replace Items entirely. Each entry
	// carries its own cell identifier.
	StaticItems []Entry

	// NumberOfItems, when set and StaticItems is empty, is the
	// authoritative row count. Rows beyond len(Items) resolve with a nil
	// item so a widget can draw skeleton rows before data arrives.
	NumberOfItems *int

	Header *Entry
	Footer *Entry

	// LoadingMoreIdentifier, when non-empty, appends one trailing row
	// with no item after the dynamic items. It has no effect on static
	// or overridden content.
	LoadingMoreIdentifier string

	// CellIdentifier is used for every row drawn from Items.
	CellIdentifier string

	// Delegate is notified after each element is configured. The list
	// does not own it.
	Delegate Delegate
}

// Count is a convenience for setting ListConfig.NumberOfItems.
func Count(n int) *int {
	return &n
}

// List is a single-section data source.
type List struct {
	cfg     ListConfig
	content Content
}

// NewList creates a list and resolves its content mode.
func NewList(cfg ListConfig) *List {
	l := &List{}
	l.Reconfigure(cfg)
	return l
}

// Reconfigure replaces the whole configuration and re-resolves the
// content mode.
func (l *List) Reconfigure(cfg ListConfig) {
	l.cfg = cfg
	l.content = resolveContent(cfg)
}

// Config returns the current configuration.
func (l *List) Config() ListConfig {
	return l.cfg
}

// Content returns the resolved content.
func (l *List) Content() Content {
	return l.content
}

// SetItems replaces the dynamic items.
func (l *List) SetItems(items []any) {
	cfg := l.cfg
	cfg.Items = items
	l.Reconfigure(cfg)
}

// SetLoadingMore sets or clears (with "") the loading row identifier.
func (l *List) SetLoadingMore(identifier string) {
	l.cfg.LoadingMoreIdentifier = identifier
}

// SetDelegate replaces the delegate. Pass nil to detach.
func (l *List) SetDelegate(d Delegate) {
	l.cfg.Delegate = d
}

// LoadingRow returns the index of the loading row, if the list currently
// shows one.
func (l *List) LoadingRow() (int, bool) {
	if l.content.mode != ModeDynamic || l.cfg.LoadingMoreIdentifier == "" {
		return 0, false
	}
	return len(l.content.items), true
}

// SectionCount always returns 1.
func (l *List) SectionCount() int {
	return 1
}

// RowCount returns the number of rows. The section is ignored.
func (l *List) RowCount(section int) (int, error) {
	return l.rowCount(), nil
}

func (l *List) rowCount() int {
	n := l.content.Len()
	if _, ok := l.LoadingRow(); ok {
		n++
	}
	return n
}

// ResolveCell maps a row to its cell identifier and item. The section of
// path is ignored.
func (l *List) ResolveCell(path IndexPath) (Entry, error) {
	row := path.Row
	if row < 0 || row >= l.rowCount() {
		return Entry{}, rowOutOfRange(row, l.rowCount())
	}

	if loading, ok := l.LoadingRow(); ok && row == loading {
		return Entry{Identifier: l.cfg.LoadingMoreIdentifier}, nil
	}

	switch l.content.mode {
	case ModeStatic:
		return l.content.static[row], nil
	case ModeOverridden:
		var item any
		if row < len(l.content.items) {
			item = l.content.items[row]
		}
		return Entry{Identifier: l.cfg.CellIdentifier, Item: item}, nil
	default:
		return Entry{Identifier: l.cfg.CellIdentifier, Item: l.content.items[row]}, nil
	}
}

// ResolveDecoration returns the header or footer entry.
func (l *List) ResolveDecoration(kind Kind, path IndexPath) (Entry, bool, error) {
	var e *Entry
	switch kind {
	case KindHeader:
		e = l.cfg.Header
	case KindFooter:
		e = l.cfg.Footer
	}
	if e == nil {
		return Entry{}, false, nil
	}
	return *e, true, nil
}

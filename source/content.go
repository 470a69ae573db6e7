package source

// Mode is the active content source of a List.
type Mode int

const (
	ModeEmpty      Mode = iota // no rows
	ModeDynamic                // rows drawn from items, plus an optional loading row
	ModeOverridden             // fixed row count, items fill the leading rows
	ModeStatic                 // rows drawn from static entries
)

func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeDynamic:
		return "dynamic"
	case ModeOverridden:
		return "overridden"
	case ModeStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Content is the resolved row source of a List. Exactly one mode is active;
// the zero value is empty.
type Content struct {
	mode   Mode
	items  []any
	static []Entry
	count  int
}

// Static returns content backed by fixed entries. An empty slice yields
// empty content.
func Static(entries []Entry) Content {
	if len(entries) == 0 {
		return Content{}
	}
	return Content{mode: ModeStatic, static: entries}
}

// Overridden returns content that reports count rows regardless of how many
// items are available. Rows past len(items) resolve with a nil item.
// A negative count is treated as zero.
func Overridden(count int, items []any) Content {
	return Content{mode: ModeOverridden, count: max(0, count), items: items}
}

// Dynamic returns content backed by items. An empty slice yields empty
// content.
func Dynamic(items []any) Content {
	if len(items) == 0 {
		return Content{}
	}
	return Content{mode: ModeDynamic, items: items}
}

// Empty returns content with no rows.
func Empty() Content {
	return Content{}
}

// Mode reports the active mode.
func (c Content) Mode() Mode {
	return c.mode
}

// Len returns the number of content rows, excluding any loading row.
func (c Content) Len() int {
	switch c.mode {
	case ModeStatic:
		return len(c.static)
	case ModeOverridden:
		return c.count
	case ModeDynamic:
		return len(c.items)
	default:
		return 0
	}
}

// Items returns the backing items of dynamic and overridden content.
func (c Content) Items() []any {
	return c.items
}

// resolveContent applies the configuration priority:
// static entries, then the override count, then items.
func resolveContent(cfg ListConfig) Content {
	if len(cfg.StaticItems) > 0 {
		return Static(cfg.StaticItems)
	}
	if cfg.NumberOfItems != nil {
		return Overridden(*cfg.NumberOfItems, cfg.Items)
	}
	return Dynamic(cfg.Items)
}

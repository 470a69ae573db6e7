package source

// Grouped presents one List per section.
type Grouped struct {
	sources []*List
}

// NewGrouped creates a grouped source owning the given lists.
func NewGrouped(sources ...*List) *Grouped {
	return &Grouped{sources: sources}
}

// SetSources replaces all sections.
func (g *Grouped) SetSources(sources []*List) {
	g.sources = sources
}

// Sources returns the lists in section order.
func (g *Grouped) Sources() []*List {
	return g.sources
}

// Source returns the list backing section.
func (g *Grouped) Source(section int) (*List, error) {
	if section < 0 || section >= len(g.sources) {
		return nil, sectionOutOfRange(section, len(g.sources))
	}
	return g.sources[section], nil
}

// LoadingRow returns the row of section's loading row, if it shows one.
func (g *Grouped) LoadingRow(section int) (int, bool) {
	if section < 0 || section >= len(g.sources) {
		return 0, false
	}
	return g.sources[section].LoadingRow()
}

// SectionCount returns the number of lists, but never less than one: an
// empty grouped source still reports a single empty section.
func (g *Grouped) SectionCount() int {
	return max(1, len(g.sources))
}

// RowCount forwards to the list backing section. The implicit section of
// an empty grouped source has zero rows.
func (g *Grouped) RowCount(section int) (int, error) {
	if len(g.sources) == 0 && section == 0 {
		return 0, nil
	}
	src, err := g.Source(section)
	if err != nil {
		return 0, err
	}
	return src.RowCount(section)
}

// ResolveCell forwards path unchanged to the list backing path.Section.
func (g *Grouped) ResolveCell(path IndexPath) (Entry, error) {
	src, err := g.Source(path.Section)
	if err != nil {
		return Entry{}, err
	}
	return src.ResolveCell(path)
}

// ResolveDecoration forwards to the list backing path.Section.
func (g *Grouped) ResolveDecoration(kind Kind, path IndexPath) (Entry, bool, error) {
	if len(g.sources) == 0 && path.Section == 0 {
		return Entry{}, false, nil
	}
	src, err := g.Source(path.Section)
	if err != nil {
		return Entry{}, false, err
	}
	return src.ResolveDecoration(kind, path)
}

// Cell forwards to the list backing path.Section. That list's delegate is
// the one notified.
func (g *Grouped) Cell(dq Dequeuer, path IndexPath) (any, error) {
	src, err := g.Source(path.Section)
	if err != nil {
		return nil, err
	}
	return src.Cell(dq, path)
}

// Decoration forwards to the list backing path.Section.
func (g *Grouped) Decoration(dq Dequeuer, kind Kind, path IndexPath) (any, error) {
	if len(g.sources) == 0 && path.Section == 0 {
		return nil, nil
	}
	src, err := g.Source(path.Section)
	if err != nil {
		return nil, err
	}
	return src.Decoration(dq, kind, path)
}

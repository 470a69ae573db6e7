// Package source resolves list coordinates to the cell identifier and item
// a rendering widget needs to build a row.
//
// A List describes one section: primary items, optional static items, an
// optional header and footer, an optional loading-more row and a default
// cell identifier. A Grouped composes several lists, one per section.
//
// Both types answer the same queries through Provider:
//
//	n := g.SectionCount()
//	rows, err := g.RowCount(s)
//	entry, err := g.ResolveCell(source.IndexPath{Section: s, Row: r})
//
// Cell and Decoration go one step further: they ask a Dequeuer for a
// reusable element keyed by the resolved identifier, push the item into it
// when it is Configurable and notify the Delegate.
//
// Nothing in this package is safe for concurrent use. Callers confine all
// queries and reconfiguration to the goroutine that drives rendering.
package source

package tui

import (
	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/util"
	"github.com/drake/gridsource/ui/tui/widget"
)

// filterResult is a source with one section narrowed to the rows matching
// a query.
type filterResult struct {
	src     *source.Grouped
	section int
	rows    []int // filtered row -> row in the base section
	matches map[source.IndexPath][]int
}

// origin maps a path in the filtered source back to the base source.
func (f *filterResult) origin(path source.IndexPath) source.IndexPath {
	if path.Section != f.section || path.Row >= len(f.rows) {
		return path
	}
	return source.IndexPath{Section: path.Section, Row: f.rows[path.Row]}
}

// filterSection fuzzy-filters one section of base. The other sections are
// shared with base unchanged. The narrowed section never shows a loading
// row, and skeleton rows past the loaded items are dropped.
func filterSection(base *source.Grouped, section int, query string) (*filterResult, error) {
	l, err := base.Source(section)
	if err != nil {
		return nil, err
	}

	cfg := l.Config()
	narrowed := cfg
	narrowed.StaticItems = nil
	narrowed.NumberOfItems = nil
	narrowed.Items = nil
	narrowed.LoadingMoreIdentifier = ""

	var matches []util.Match
	content := l.Content()
	switch content.Mode() {
	case source.ModeStatic:
		matches = util.FuzzyFilter(query, cfg.StaticItems, func(e source.Entry) string {
			return widget.Text(e.Item)
		})
		for _, m := range matches {
			narrowed.StaticItems = append(narrowed.StaticItems, cfg.StaticItems[m.Index])
		}
	case source.ModeDynamic, source.ModeOverridden:
		items := content.Items()
		if len(items) > content.Len() {
			items = items[:content.Len()]
		}
		matches = util.FuzzyFilter(query, items, widget.Text)
		for _, m := range matches {
			narrowed.Items = append(narrowed.Items, items[m.Index])
		}
	}

	res := &filterResult{
		section: section,
		rows:    make([]int, len(matches)),
		matches: make(map[source.IndexPath][]int, len(matches)),
	}
	for i, m := range matches {
		res.rows[i] = m.Index
		if len(m.Positions) > 0 {
			res.matches[source.IndexPath{Section: section, Row: i}] = m.Positions
		}
	}

	sources := append([]*source.List(nil), base.Sources()...)
	sources[section] = source.NewList(narrowed)
	res.src = source.NewGrouped(sources...)
	return res, nil
}

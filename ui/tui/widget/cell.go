package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/gridsource/source"
	"github.com/drake/gridsource/ui/tui/style"
	"github.com/drake/gridsource/ui/tui/util"
)

// RenderContext carries everything a cell needs to draw one row.
type RenderContext struct {
	Width    int
	Selected bool
	Styles   style.Styles
	Spinner  string // current spinner frame
	Matches  []int  // rune positions to highlight
}

// Cell draws a single row. Cells that also implement source.Configurable
// receive the resolved item before they are drawn.
type Cell interface {
	Render(ctx RenderContext) string
}

var (
	_ source.Configurable = (*TextCell)(nil)
	_ source.Configurable = (*HeaderCell)(nil)
	_ source.Configurable = (*FooterCell)(nil)
	_ source.Configurable = (*LoadingCell)(nil)
)

// Text returns the display text for an item.
func Text(item any) string {
	switch v := item.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// TextCell renders its item as a single line of text. A nil item renders
// as a skeleton bar.
type TextCell struct {
	Prefix string
	item   any
	filled bool
}

// NewTextCell returns a Factory for text cells with the given prefix.
func NewTextCell(prefix string) Factory {
	return func() Cell { return &TextCell{Prefix: prefix} }
}

// Configure implements source.Configurable.
func (c *TextCell) Configure(item any) {
	c.item = item
	c.filled = item != nil
}

// Item returns the configured item.
func (c *TextCell) Item() any {
	return c.item
}

// Render implements Cell.
func (c *TextCell) Render(ctx RenderContext) string {
	marker := "  "
	if ctx.Selected {
		marker = "> "
	}

	if !c.filled {
		bar := strings.Repeat("░", max(0, min(12, ctx.Width-len(marker))))
		return rowStyle(ctx).Render(marker) + ctx.Styles.Skeleton.Render(bar)
	}

	text := util.Truncate(util.SingleLine(c.Prefix+Text(c.item)), ctx.Width-len(marker))
	return rowStyle(ctx).Render(marker) + highlight(text, len([]rune(c.Prefix)), ctx)
}

// highlight styles text rune by rune, marking fuzzy-match positions. offset
// shifts match positions past a prefix that was not part of the match.
func highlight(text string, offset int, ctx RenderContext) string {
	base := rowStyle(ctx)
	if len(ctx.Matches) == 0 {
		return base.Render(text)
	}

	matchSet := make(map[int]bool, len(ctx.Matches))
	for _, pos := range ctx.Matches {
		matchSet[pos+offset] = true
	}

	var b strings.Builder
	for idx, r := range []rune(text) {
		ch := string(r)
		if matchSet[idx] {
			s := ctx.Styles.RowMatch
			if ctx.Selected {
				s = s.Background(ctx.Styles.RowSelected.GetBackground())
			}
			b.WriteString(s.Render(ch))
		} else {
			b.WriteString(base.Render(ch))
		}
	}
	return b.String()
}

func rowStyle(ctx RenderContext) lipgloss.Style {
	if ctx.Selected {
		return ctx.Styles.RowSelected
	}
	return ctx.Styles.Row
}

// HeaderCell renders a section header decoration.
type HeaderCell struct{ item any }

// Configure implements source.Configurable.
func (c *HeaderCell) Configure(item any) { c.item = item }

// Render implements Cell.
func (c *HeaderCell) Render(ctx RenderContext) string {
	return ctx.Styles.Header.Render(util.PadRight(" "+Text(c.item), ctx.Width))
}

// FooterCell renders a section footer decoration.
type FooterCell struct{ item any }

// Configure implements source.Configurable.
func (c *FooterCell) Configure(item any) { c.item = item }

// Render implements Cell.
func (c *FooterCell) Render(ctx RenderContext) string {
	return ctx.Styles.Footer.Render(util.Truncate("  "+Text(c.item), ctx.Width))
}

// LoadingCell renders the loading-more row with the collection's spinner.
type LoadingCell struct {
	Label string
}

// Configure implements source.Configurable. The loading row never carries
// an item.
func (c *LoadingCell) Configure(any) {}

// Render implements Cell.
func (c *LoadingCell) Render(ctx RenderContext) string {
	label := c.Label
	if label == "" {
		label = "Loading more…"
	}
	marker := "  "
	if ctx.Selected {
		marker = "> "
	}
	line := ctx.Styles.Spinner.Render(ctx.Spinner) + " " + ctx.Styles.Loading.Render(label)
	return rowStyle(ctx).Render(marker) + util.Truncate(line, ctx.Width-len(marker))
}

// ErrorCell is drawn in place of a row whose element could not be built.
type ErrorCell struct {
	Err error
}

// Render implements Cell.
func (c *ErrorCell) Render(ctx RenderContext) string {
	return ctx.Styles.RowError.Render(util.Truncate("  ! "+c.Err.Error(), ctx.Width))
}

package source

import "fmt"

// Entry pairs a cell identifier with the item rendered by that cell.
// Item is nil for rows that carry no content, such as the loading row.
type Entry struct {
	Identifier string
	Item       any
}

// IndexPath addresses a row within a section.
type IndexPath struct {
	Section int
	Row     int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d, %d]", p.Section, p.Row)
}

// Kind identifies a section decoration.
type Kind string

const (
	KindHeader Kind = "header"
	KindFooter Kind = "footer"
)

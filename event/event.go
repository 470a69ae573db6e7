package event

import "github.com/drake/gridsource/source"

// Type identifies what happened in the UI.
type Type int

const (
	Selected Type = iota // A row was chosen with enter
	LoadMore             // A loading row came on screen
	Quit                 // The UI is exiting
)

func (t Type) String() string {
	switch t {
	case Selected:
		return "selected"
	case LoadMore:
		return "load_more"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is sent from the UI to the host that owns the sources.
type Event struct {
	Type  Type
	Path  source.IndexPath // Row in the unfiltered source
	Entry source.Entry     // Resolved entry at Path; zero for Quit
}

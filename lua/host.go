package lua

// Host provides the bridge between Engine and the rest of the system.
// This abstraction decouples Engine from specific implementations,
// making it testable without full infrastructure.
type Host interface {
	// Log records a message from grid.log.
	Log(msg string)

	// SectionChanged is called after a script replaces a section's items
	// or loading state through grid.set_items or grid.set_loading. The
	// section is 0-based.
	SectionChanged(section int)
}

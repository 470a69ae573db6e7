package source

// Provider answers the queries a list-rendering widget issues.
// List and Grouped both implement it.
type Provider interface {
	SectionCount() int
	RowCount(section int) (int, error)
	ResolveCell(path IndexPath) (Entry, error)

	// ResolveDecoration reports ok == false when the section has no
	// decoration of the given kind.
	ResolveDecoration(kind Kind, path IndexPath) (entry Entry, ok bool, err error)
}

// Binder turns a resolved coordinate into a configured element.
type Binder interface {
	Cell(dq Dequeuer, path IndexPath) (any, error)
	Decoration(dq Dequeuer, kind Kind, path IndexPath) (any, error)
}

// Dequeuer produces reusable visual elements keyed by identifier.
// It is supplied by the widget layer.
type Dequeuer interface {
	DequeueCell(identifier string, path IndexPath) (any, error)
	DequeueDecoration(kind Kind, identifier string, path IndexPath) (any, error)
}

// Configurable is implemented by elements that accept the resolved item.
type Configurable interface {
	Configure(item any)
}

// Delegate observes configured elements. It never influences resolution.
type Delegate interface {
	DidConfigure(element Configurable, path IndexPath)
}

// DelegateFunc adapts a function to Delegate.
type DelegateFunc func(element Configurable, path IndexPath)

func (f DelegateFunc) DidConfigure(element Configurable, path IndexPath) {
	f(element, path)
}

var (
	_ Provider = (*List)(nil)
	_ Binder   = (*List)(nil)
	_ Provider = (*Grouped)(nil)
	_ Binder   = (*Grouped)(nil)
)

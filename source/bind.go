package source

import "fmt"

// Cell resolves path, dequeues an element for the resolved identifier and
// configures it.
func (l *List) Cell(dq Dequeuer, path IndexPath) (any, error) {
	entry, err := l.ResolveCell(path)
	if err != nil {
		return nil, err
	}

	el, err := dq.DequeueCell(entry.Identifier, path)
	if err != nil {
		return nil, fmt.Errorf("dequeue cell %q at %v: %w", entry.Identifier, path, err)
	}

	l.configure(el, entry.Item, path)
	return el, nil
}

// Decoration resolves and configures the header or footer element. It
// returns a nil element and no error when the list has no decoration of
// that kind.
func (l *List) Decoration(dq Dequeuer, kind Kind, path IndexPath) (any, error) {
	entry, ok, err := l.ResolveDecoration(kind, path)
	if err != nil || !ok {
		return nil, err
	}

	el, err := dq.DequeueDecoration(kind, entry.Identifier, path)
	if err != nil {
		return nil, fmt.Errorf("dequeue %s %q at %v: %w", kind, entry.Identifier, path, err)
	}

	l.configure(el, entry.Item, path)
	return el, nil
}

// configure pushes item into el and notifies the delegate, in that order.
// Elements that are not Configurable are returned untouched and the
// delegate is not called.
func (l *List) configure(el any, item any, path IndexPath) {
	c, ok := el.(Configurable)
	if !ok {
		return
	}
	c.Configure(item)
	if l.cfg.Delegate != nil {
		l.cfg.Delegate.DidConfigure(c, path)
	}
}

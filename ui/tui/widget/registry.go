package widget

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/drake/gridsource/internal/logging"
	"github.com/drake/gridsource/source"
)

// ErrUnregistered is returned when no factory is registered for an
// identifier.
var ErrUnregistered = errors.New("no cell registered for identifier")

// DefaultPoolSize is the number of cell instances kept for reuse.
const DefaultPoolSize = 512

// Factory creates a new cell.
type Factory func() Cell

// reuseKey identifies a pooled cell. Kind is empty for ordinary rows.
type reuseKey struct {
	kind       source.Kind
	identifier string
	path       source.IndexPath
}

// Registry maps identifiers to cell factories and keeps recently used cells
// in an LRU pool so that redrawing the same row reuses its element. It
// implements source.Dequeuer.
type Registry struct {
	cells       map[string]Factory
	decorations map[source.Kind]map[string]Factory
	pool        *lru.Cache[reuseKey, Cell]
	log         *logging.Logger
}

var _ source.Dequeuer = (*Registry)(nil)

// NewRegistry creates a registry whose pool holds up to size cells.
func NewRegistry(size int, log *logging.Logger) *Registry {
	if size <= 0 {
		size = DefaultPoolSize
	}
	if log == nil {
		log = logging.NopLogger()
	}
	pool, _ := lru.New[reuseKey, Cell](size)
	return &Registry{
		cells:       make(map[string]Factory),
		decorations: make(map[source.Kind]map[string]Factory),
		pool:        pool,
		log:         log.WithComponent("registry"),
	}
}

// Register binds a row identifier to a factory, replacing any previous one.
func (r *Registry) Register(identifier string, f Factory) {
	r.cells[identifier] = f
	r.purgeIdentifier("", identifier)
}

// RegisterDecoration binds a decoration identifier of the given kind.
func (r *Registry) RegisterDecoration(kind source.Kind, identifier string, f Factory) {
	if r.decorations[kind] == nil {
		r.decorations[kind] = make(map[string]Factory)
	}
	r.decorations[kind][identifier] = f
	r.purgeIdentifier(kind, identifier)
}

// Registered reports whether a row identifier has a factory.
func (r *Registry) Registered(identifier string) bool {
	_, ok := r.cells[identifier]
	return ok
}

// RegisteredDecoration reports whether a decoration identifier has a factory.
func (r *Registry) RegisteredDecoration(kind source.Kind, identifier string) bool {
	_, ok := r.decorations[kind][identifier]
	return ok
}

// DequeueCell implements source.Dequeuer.
func (r *Registry) DequeueCell(identifier string, path source.IndexPath) (any, error) {
	return r.dequeue(reuseKey{identifier: identifier, path: path}, r.cells[identifier])
}

// DequeueDecoration implements source.Dequeuer.
func (r *Registry) DequeueDecoration(kind source.Kind, identifier string, path source.IndexPath) (any, error) {
	return r.dequeue(reuseKey{kind: kind, identifier: identifier, path: path}, r.decorations[kind][identifier])
}

func (r *Registry) dequeue(key reuseKey, f Factory) (Cell, error) {
	if cell, ok := r.pool.Get(key); ok {
		return cell, nil
	}
	if f == nil {
		r.log.Warn("unregistered identifier", "identifier", key.identifier, "kind", string(key.kind))
		if key.kind != "" {
			return nil, fmt.Errorf("%s %q: %w", key.kind, key.identifier, ErrUnregistered)
		}
		return nil, fmt.Errorf("%q: %w", key.identifier, ErrUnregistered)
	}
	cell := f()
	r.pool.Add(key, cell)
	return cell, nil
}

// Len returns the number of pooled cells.
func (r *Registry) Len() int {
	return r.pool.Len()
}

// Purge drops every pooled cell. Call it after the source changes shape so
// that rows do not pick up elements built for a different identifier.
func (r *Registry) Purge() {
	r.pool.Purge()
}

func (r *Registry) purgeIdentifier(kind source.Kind, identifier string) {
	for _, key := range r.pool.Keys() {
		if key.kind == kind && key.identifier == identifier {
			r.pool.Remove(key)
		}
	}
}

// RegisterDefaults registers built-in cells for every identifier the lists
// reference that has no factory yet: text cells for rows, a loading cell
// for the loading-more row and header/footer cells for decorations.
func RegisterDefaults(r *Registry, lists []*source.List) {
	add := func(identifier string, f Factory) {
		if !r.Registered(identifier) {
			r.Register(identifier, f)
		}
	}
	addDecoration := func(kind source.Kind, e *source.Entry, f Factory) {
		if e != nil && !r.RegisteredDecoration(kind, e.Identifier) {
			r.RegisterDecoration(kind, e.Identifier, f)
		}
	}

	for _, l := range lists {
		cfg := l.Config()
		add(cfg.CellIdentifier, NewTextCell(""))
		for _, e := range cfg.StaticItems {
			add(e.Identifier, NewTextCell(""))
		}
		if cfg.LoadingMoreIdentifier != "" {
			add(cfg.LoadingMoreIdentifier, func() Cell { return &LoadingCell{} })
		}
		addDecoration(source.KindHeader, cfg.Header, func() Cell { return &HeaderCell{} })
		addDecoration(source.KindFooter, cfg.Footer, func() Cell { return &FooterCell{} })
	}
}

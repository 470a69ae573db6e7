package source

import (
	"errors"
	"testing"
)

type recordingCell struct {
	identifier string
	item       any
	configured int
}

func (c *recordingCell) Configure(item any) {
	c.item = item
	c.configured++
}

type plainCell struct{ identifier string }

type mockDequeuer struct {
	plain map[string]bool
	calls []string
}

func (d *mockDequeuer) DequeueCell(identifier string, path IndexPath) (any, error) {
	d.calls = append(d.calls, "cell:"+identifier)
	if identifier == "" {
		return nil, errors.New("no identifier")
	}
	if d.plain[identifier] {
		return &plainCell{identifier: identifier}, nil
	}
	return &recordingCell{identifier: identifier}, nil
}

func (d *mockDequeuer) DequeueDecoration(kind Kind, identifier string, path IndexPath) (any, error) {
	d.calls = append(d.calls, string(kind)+":"+identifier)
	return &recordingCell{identifier: identifier}, nil
}

type configureEvent struct {
	path IndexPath
	item any
}

func recordTo(events *[]configureEvent) Delegate {
	return DelegateFunc(func(el Configurable, path IndexPath) {
		// The item is already in place when the delegate runs.
		*events = append(*events, configureEvent{path: path, item: el.(*recordingCell).item})
	})
}

func TestListCellConfiguresAndNotifies(t *testing.T) {
	var events []configureEvent
	l := NewList(ListConfig{
		Items:                 items("a", "b"),
		CellIdentifier:        "Cell",
		LoadingMoreIdentifier: "Loading",
		Delegate:              recordTo(&events),
	})
	dq := &mockDequeuer{}

	el, err := l.Cell(dq, IndexPath{Row: 1})
	if err != nil {
		t.Fatalf("Cell() error: %v", err)
	}
	cell := el.(*recordingCell)
	if cell.identifier != "Cell" || cell.item != "b" || cell.configured != 1 {
		t.Errorf("cell = %+v, want Cell/b configured once", cell)
	}

	el, err = l.Cell(dq, IndexPath{Row: 2})
	if err != nil {
		t.Fatalf("Cell(loading) error: %v", err)
	}
	if c := el.(*recordingCell); c.identifier != "Loading" || c.item != nil {
		t.Errorf("loading cell = %+v", c)
	}

	want := []configureEvent{{IndexPath{Row: 1}, "b"}, {IndexPath{Row: 2}, nil}}
	if len(events) != len(want) {
		t.Fatalf("delegate called %d times, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestListCellSkipsNonConfigurable(t *testing.T) {
	called := false
	l := NewList(ListConfig{
		Items:          items("a"),
		CellIdentifier: "Plain",
		Delegate:       DelegateFunc(func(Configurable, IndexPath) { called = true }),
	})

	el, err := l.Cell(&mockDequeuer{plain: map[string]bool{"Plain": true}}, IndexPath{})
	if err != nil {
		t.Fatalf("Cell() error: %v", err)
	}
	if _, ok := el.(*plainCell); !ok {
		t.Errorf("element = %T, want *plainCell", el)
	}
	if called {
		t.Error("delegate notified for a non-configurable element")
	}
}

func TestListCellErrors(t *testing.T) {
	dq := &mockDequeuer{}

	l := NewList(ListConfig{Items: items("a")})
	if _, err := l.Cell(dq, IndexPath{Row: 1}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Cell(out of range) error = %v", err)
	}
	if len(dq.calls) != 0 {
		t.Errorf("dequeuer called for an unresolvable row: %v", dq.calls)
	}

	// Empty cell identifier makes the mock dequeuer fail.
	if _, err := l.Cell(dq, IndexPath{Row: 0}); err == nil {
		t.Error("Cell() succeeded with a failing dequeuer")
	}
}

func TestListDecoration(t *testing.T) {
	var events []configureEvent
	l := NewList(ListConfig{
		Header:   &Entry{"Title", "Fruits"},
		Delegate: recordTo(&events),
	})
	dq := &mockDequeuer{}

	el, err := l.Decoration(dq, KindHeader, IndexPath{})
	if err != nil {
		t.Fatalf("Decoration(header) error: %v", err)
	}
	if c := el.(*recordingCell); c.identifier != "Title" || c.item != "Fruits" {
		t.Errorf("header = %+v", c)
	}

	el, err = l.Decoration(dq, KindFooter, IndexPath{})
	if err != nil || el != nil {
		t.Errorf("Decoration(footer) = %v, %v; want nil, nil", el, err)
	}

	if len(events) != 1 {
		t.Errorf("delegate called %d times, want 1", len(events))
	}
	if len(dq.calls) != 1 || dq.calls[0] != "header:Title" {
		t.Errorf("dequeuer calls = %v", dq.calls)
	}
}

func TestGroupedCellUsesSectionDelegate(t *testing.T) {
	var first, second []configureEvent
	g := NewGrouped(
		NewList(ListConfig{Items: items("a"), CellIdentifier: "A", Delegate: recordTo(&first)}),
		NewList(ListConfig{Items: items("b"), CellIdentifier: "B", Delegate: recordTo(&second)}),
	)
	dq := &mockDequeuer{}

	el, err := g.Cell(dq, IndexPath{Section: 1, Row: 0})
	if err != nil {
		t.Fatalf("Cell() error: %v", err)
	}
	if c := el.(*recordingCell); c.identifier != "B" || c.item != "b" {
		t.Errorf("cell = %+v", c)
	}
	if len(first) != 0 || len(second) != 1 {
		t.Errorf("delegate calls first=%d second=%d, want 0 and 1", len(first), len(second))
	}
	if second[0].path != (IndexPath{Section: 1, Row: 0}) {
		t.Errorf("delegate path = %v, want [1, 0]", second[0].path)
	}

	if el, err := NewGrouped().Decoration(dq, KindHeader, IndexPath{}); el != nil || err != nil {
		t.Errorf("empty Decoration() = %v, %v", el, err)
	}
}

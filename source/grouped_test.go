package source

import (
	"errors"
	"testing"
)

func TestGroupedSectionCount(t *testing.T) {
	tests := []struct {
		name    string
		sources []*List
		want    int
	}{
		{"empty reports one section", nil, 1},
		{"one", []*List{NewList(ListConfig{})}, 1},
		{"three", []*List{NewList(ListConfig{}), NewList(ListConfig{}), NewList(ListConfig{})}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrouped(tt.sources...)
			if got := g.SectionCount(); got != tt.want {
				t.Errorf("SectionCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGroupedForwardsToSection(t *testing.T) {
	a := NewList(ListConfig{Items: items("a0"), CellIdentifier: "A"})
	b := NewList(ListConfig{Items: items("b0", "b1"), CellIdentifier: "B", LoadingMoreIdentifier: "Loading"})
	c := NewList(ListConfig{StaticItems: []Entry{{"C", "c0"}}})
	g := NewGrouped(a, b, c)

	if g.SectionCount() != 3 {
		t.Fatalf("SectionCount() = %d, want 3", g.SectionCount())
	}

	wantRows := []int{1, 3, 1}
	for s, want := range wantRows {
		got, err := g.RowCount(s)
		if err != nil {
			t.Fatalf("RowCount(%d) error: %v", s, err)
		}
		if got != want {
			t.Errorf("RowCount(%d) = %d, want %d", s, got, want)
		}
	}

	for r := 0; r < 3; r++ {
		path := IndexPath{Section: 1, Row: r}
		got, err := g.ResolveCell(path)
		if err != nil {
			t.Fatalf("ResolveCell(%v) error: %v", path, err)
		}
		direct, _ := b.ResolveCell(IndexPath{Row: r})
		if got != direct {
			t.Errorf("ResolveCell(%v) = %+v, want %+v", path, got, direct)
		}
	}
}

func TestGroupedEmpty(t *testing.T) {
	g := NewGrouped()

	n, err := g.RowCount(0)
	if err != nil || n != 0 {
		t.Errorf("RowCount(0) = %d, %v; want 0, nil", n, err)
	}

	if _, err := g.RowCount(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RowCount(1) error = %v, want ErrIndexOutOfRange", err)
	}

	if _, err := g.ResolveCell(IndexPath{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ResolveCell([0,0]) error = %v, want ErrIndexOutOfRange", err)
	}

	if _, ok, err := g.ResolveDecoration(KindHeader, IndexPath{}); ok || err != nil {
		t.Errorf("ResolveDecoration() = %v, %v; want false, nil", ok, err)
	}
}

func TestGroupedLoadingRow(t *testing.T) {
	g := NewGrouped(
		NewList(ListConfig{Items: items("a0", "a1"), LoadingMoreIdentifier: "Loading"}),
		NewList(ListConfig{StaticItems: []Entry{{Identifier: "Loading", Item: "s"}}, LoadingMoreIdentifier: "Loading"}),
	)

	tests := []struct {
		section int
		row     int
		ok      bool
	}{
		{0, 2, true},
		{1, 0, false},
		{2, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		row, ok := g.LoadingRow(tt.section)
		if row != tt.row || ok != tt.ok {
			t.Errorf("LoadingRow(%d) = %d, %v; want %d, %v", tt.section, row, ok, tt.row, tt.ok)
		}
	}
}

func TestGroupedSectionOutOfRange(t *testing.T) {
	g := NewGrouped(NewList(ListConfig{Items: items("a")}))

	for _, section := range []int{-1, 1, 5} {
		_, err := g.ResolveCell(IndexPath{Section: section})
		var rerr *RangeError
		if !errors.As(err, &rerr) {
			t.Fatalf("ResolveCell(section %d) error = %v, want *RangeError", section, err)
		}
		if rerr.Axis != AxisSection || rerr.Count != 1 {
			t.Errorf("RangeError = %+v, want section axis with count 1", rerr)
		}
	}
}

func TestGroupedDecorations(t *testing.T) {
	g := NewGrouped(
		NewList(ListConfig{Header: &Entry{"Title", "first"}}),
		NewList(ListConfig{Footer: &Entry{"Foot", "second"}}),
	)

	got, ok, _ := g.ResolveDecoration(KindHeader, IndexPath{Section: 0})
	if !ok || got != (Entry{"Title", "first"}) {
		t.Errorf("header of section 0 = %+v, %v", got, ok)
	}
	if _, ok, _ := g.ResolveDecoration(KindHeader, IndexPath{Section: 1}); ok {
		t.Error("section 1 reported a header")
	}
	got, ok, _ = g.ResolveDecoration(KindFooter, IndexPath{Section: 1})
	if !ok || got != (Entry{"Foot", "second"}) {
		t.Errorf("footer of section 1 = %+v, %v", got, ok)
	}
}

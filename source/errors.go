package source

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a coordinate falls outside the rows or
// sections a source currently reports. It is always a caller error: query
// SectionCount and RowCount again before indexing.
var ErrIndexOutOfRange = errors.New("index out of range")

// Axis names the coordinate component that was out of range.
type Axis string

const (
	AxisSection Axis = "section"
	AxisRow     Axis = "row"
)

// RangeError describes an out-of-range coordinate.
type RangeError struct {
	Axis  Axis
	Index int
	Count int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [0, %d)", e.Axis, e.Index, e.Count)
}

func (e *RangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

func rowOutOfRange(index, count int) error {
	return &RangeError{Axis: AxisRow, Index: index, Count: count}
}

func sectionOutOfRange(index, count int) error {
	return &RangeError{Axis: AxisSection, Index: index, Count: count}
}

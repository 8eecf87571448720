package physical

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAxis is returned when an axis name does not exist on the
	// array being indexed.
	ErrUnknownAxis = errors.New("physical: unknown axis")

	// ErrIndexRange is returned when an integer index or range falls
	// outside an axis.
	ErrIndexRange = errors.New("physical: index out of range")

	// ErrShapeMismatch is returned when two operands of an elementwise
	// operation have different shapes.
	ErrShapeMismatch = errors.New("physical: shape mismatch")

	// ErrInvalidTarget is returned when an index target has the wrong type
	// for the axis being searched.
	ErrInvalidTarget = errors.New("physical: invalid index target")
)

// AxisShapeError reports a mismatch between array shape and axis metadata
// at construction time.
type AxisShapeError struct {
	Dimension string
	AxisLen   int
	Want      int
}

func (e *AxisShapeError) Error() string {
	return fmt.Sprintf("physical: axis %q has %d values, shape wants %d",
		e.Dimension, e.AxisLen, e.Want)
}

// OutOfRangeError reports a physical index target that no axis position
// covers: a coordinate outside the axis range, an integer label missing
// from a point axis, or a string missing from a symbol axis.
type OutOfRangeError struct {
	Axis   string
	Value  float64
	Min    float64
	Max    float64
	Symbol string
}

func (e *OutOfRangeError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("physical: axis %q does not contain %q", e.Axis, e.Symbol)
	}
	return fmt.Sprintf("physical: value %v is outside axis %q range [%v, %v]",
		e.Value, e.Axis, e.Min, e.Max)
}

package measure

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the input holds no values.
	ErrEmptyInput = errors.New("measure: cannot measure empty input")

	// ErrMultipleUnits is returned when the input names more than one unit.
	ErrMultipleUnits = errors.New("measure: only one unit may be specified")

	// ErrMixedUnits is returned when nested measurables carry units that do
	// not agree.
	ErrMixedUnits = errors.New("measure: cannot combine measurements with different units")
)

// UnmeasurableError reports input whose type or structure cannot be
// interpreted as values with a unit.
type UnmeasurableError struct {
	Value any
}

func (e *UnmeasurableError) Error() string {
	return fmt.Sprintf("measure: cannot measure %v (%T)", e.Value, e.Value)
}

package dimgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/dimgo/measure"
	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
	"github.com/hupe1980/dimgo/symbolic"
)

var (
	// ErrUnknownUnit is returned when a unit symbol has no entry in the
	// reference table.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrMalformedUnit is returned when a unit expression cannot be parsed.
	ErrMalformedUnit = errors.New("malformed unit expression")

	// ErrIncompatibleUnits is returned when a conversion crosses dimensions.
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrOutOfRange is returned when an index target falls outside its axis.
	ErrOutOfRange = errors.New("target out of range")

	// ErrUnmeasurable is returned when input cannot be read as values with
	// a unit.
	ErrUnmeasurable = errors.New("unmeasurable input")
)

// translateError maps package errors onto the facade sentinels so callers
// can branch with errors.Is while errors.As still reaches the typed detail.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var unknown *metric.UnknownSymbolError
	if errors.As(err, &unknown) {
		return fmt.Errorf("%w: %w", ErrUnknownUnit, err)
	}

	var malformed *symbolic.ParseError
	if errors.As(err, &malformed) {
		return fmt.Errorf("%w: %w", ErrMalformedUnit, err)
	}

	var incompatible *metric.IncompatibleUnitsError
	if errors.As(err, &incompatible) {
		return fmt.Errorf("%w: %w", ErrIncompatibleUnits, err)
	}

	var outOfRange *physical.OutOfRangeError
	if errors.As(err, &outOfRange) {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}

	var unmeasurable *measure.UnmeasurableError
	if errors.As(err, &unmeasurable) {
		return fmt.Errorf("%w: %w", ErrUnmeasurable, err)
	}
	if errors.Is(err, measure.ErrEmptyInput) ||
		errors.Is(err, measure.ErrMultipleUnits) ||
		errors.Is(err, measure.ErrMixedUnits) {
		return fmt.Errorf("%w: %w", ErrUnmeasurable, err)
	}

	return err
}

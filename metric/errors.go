package metric

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSystem is returned when a metric system name is not "mks"
	// or "cgs".
	ErrUnknownSystem = errors.New("metric: unknown metric system")

	// ErrUnknownQuantity is returned when a quantity name has no entry in
	// the quantity catalog.
	ErrUnknownQuantity = errors.New("metric: unknown quantity")
)

// UnknownSymbolError reports a unit symbol with no entry in the reference
// table after stripping any recognized metric prefix.
type UnknownSymbolError struct {
	Symbol string
	Text   string
}

func (e *UnknownSymbolError) Error() string {
	if e.Text == "" || e.Text == e.Symbol {
		return fmt.Sprintf("metric: unknown unit symbol %q", e.Symbol)
	}
	return fmt.Sprintf("metric: unknown unit symbol %q in %q", e.Symbol, e.Text)
}

// IncompatibleUnitsError reports an attempted conversion between units whose
// dimension vectors differ.
type IncompatibleUnitsError struct {
	From     string
	To       string
	FromDims Dimensions
	ToDims   Dimensions
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("metric: cannot convert %q (%s) to %q (%s)",
		e.From, e.FromDims, e.To, e.ToDims)
}

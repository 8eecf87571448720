package physical

import (
	"math"
	"strconv"

	"github.com/hupe1980/dimgo/measure"
	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/ratio"
)

// defaultTolerance is the relative tolerance used by Equal on all quantity
// types.
const defaultTolerance = 1e-9

// Scalar is a single value with a unit.
type Scalar struct {
	value float64
	unit  metric.Unit
}

// NewScalar returns a scalar quantity. A zero-valued unit is read as
// dimensionless.
func NewScalar(value float64, unit metric.Unit) Scalar {
	return Scalar{value: value, unit: orOne(unit)}
}

// Value returns the numeric value.
func (s Scalar) Value() float64 { return s.value }

// Unit returns the unit.
func (s Scalar) Unit() metric.Unit { return orOne(s.unit) }

// WithUnit converts the scalar to a compatible unit.
func (s Scalar) WithUnit(unit metric.Unit) (Scalar, error) {
	factor, err := metric.Convert(s.Unit(), unit)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{value: s.value * factor, unit: unit}, nil
}

// Add returns s + o. The other operand is converted to the unit of s first;
// operands with different dimensions cannot be added.
func (s Scalar) Add(o Scalar) (Scalar, error) {
	factor, err := metric.Convert(o.Unit(), s.Unit())
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{value: s.value + o.value*factor, unit: s.Unit()}, nil
}

// Sub returns s - o, converting the other operand to the unit of s first.
func (s Scalar) Sub(o Scalar) (Scalar, error) {
	factor, err := metric.Convert(o.Unit(), s.Unit())
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{value: s.value - o.value*factor, unit: s.Unit()}, nil
}

// Mul returns s * o with the units composed.
func (s Scalar) Mul(o Scalar) Scalar {
	return Scalar{value: s.value * o.value, unit: s.Unit().Times(o.Unit())}
}

// Div returns s / o with the units composed.
func (s Scalar) Div(o Scalar) Scalar {
	return Scalar{value: s.value / o.value, unit: s.Unit().Over(o.Unit())}
}

// Pow raises the value and the unit to a rational power.
func (s Scalar) Pow(p ratio.Ratio) Scalar {
	return Scalar{value: math.Pow(s.value, p.Float()), unit: s.Unit().Pow(p)}
}

// Scaled returns the scalar with its value multiplied by a bare number. The
// unit is unchanged.
func (s Scalar) Scaled(k float64) Scalar {
	return Scalar{value: s.value * k, unit: s.Unit()}
}

// Equal reports whether o represents the same physical value within the
// default relative tolerance. Values with incompatible units are never
// equal.
func (s Scalar) Equal(o Scalar) bool {
	return s.EqualWithin(o, defaultTolerance)
}

// EqualWithin is Equal with an explicit relative tolerance.
func (s Scalar) EqualWithin(o Scalar, tolerance float64) bool {
	factor, err := metric.Convert(o.Unit(), s.Unit())
	if err != nil {
		return false
	}
	return within(s.value, o.value*factor, tolerance)
}

// Measure returns the scalar as a single-valued measurement.
func (s Scalar) Measure() (measure.Measurement, error) {
	return measure.NewScalar(s.value, s.Unit()), nil
}

func (s Scalar) String() string {
	return strconv.FormatFloat(s.value, 'g', -1, 64) + " " + s.Unit().String()
}

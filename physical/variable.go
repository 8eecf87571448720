package physical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/dimgo/measure"
	"github.com/hupe1980/dimgo/metric"
)

// Variable is a sequence of values sharing one unit.
type Variable struct {
	values []float64
	unit   metric.Unit
}

// NewVariable returns a sequence quantity over a copy of the given values.
func NewVariable(values []float64, unit metric.Unit) Variable {
	copied := make([]float64, len(values))
	copy(copied, values)
	return Variable{values: copied, unit: orOne(unit)}
}

// Len returns the number of values.
func (v Variable) Len() int { return len(v.values) }

// At returns the value at position i as a Scalar. It panics if i is out of
// range.
func (v Variable) At(i int) Scalar {
	return Scalar{value: v.values[i], unit: v.Unit()}
}

// Values returns a copy of the values.
func (v Variable) Values() []float64 {
	copied := make([]float64, len(v.values))
	copy(copied, v.values)
	return copied
}

// Unit returns the unit.
func (v Variable) Unit() metric.Unit { return orOne(v.unit) }

// WithUnit converts the sequence to a compatible unit.
func (v Variable) WithUnit(unit metric.Unit) (Variable, error) {
	factor, err := metric.Convert(v.Unit(), unit)
	if err != nil {
		return Variable{}, err
	}
	return Variable{values: scaled(v.values, factor), unit: unit}, nil
}

// Add returns the elementwise sum v + o. The other operand is converted to
// the unit of v first; lengths must match.
func (v Variable) Add(o Variable) (Variable, error) {
	return v.combine(o, 1)
}

// Sub returns the elementwise difference v - o, converting the other
// operand to the unit of v first.
func (v Variable) Sub(o Variable) (Variable, error) {
	return v.combine(o, -1)
}

func (v Variable) combine(o Variable, sign float64) (Variable, error) {
	if len(o.values) != len(v.values) {
		return Variable{}, fmt.Errorf("%w: %d values vs %d", ErrShapeMismatch, len(v.values), len(o.values))
	}
	factor, err := metric.Convert(o.Unit(), v.Unit())
	if err != nil {
		return Variable{}, err
	}
	values := make([]float64, len(v.values))
	for i, x := range v.values {
		values[i] = x + sign*factor*o.values[i]
	}
	return Variable{values: values, unit: v.Unit()}, nil
}

// Mul returns the elementwise product with the units composed. Lengths must
// match.
func (v Variable) Mul(o Variable) (Variable, error) {
	if len(o.values) != len(v.values) {
		return Variable{}, fmt.Errorf("%w: %d values vs %d", ErrShapeMismatch, len(v.values), len(o.values))
	}
	values := make([]float64, len(v.values))
	for i, x := range v.values {
		values[i] = x * o.values[i]
	}
	return Variable{values: values, unit: v.Unit().Times(o.Unit())}, nil
}

// Div returns the elementwise quotient with the units composed. Lengths
// must match.
func (v Variable) Div(o Variable) (Variable, error) {
	if len(o.values) != len(v.values) {
		return Variable{}, fmt.Errorf("%w: %d values vs %d", ErrShapeMismatch, len(v.values), len(o.values))
	}
	values := make([]float64, len(v.values))
	for i, x := range v.values {
		values[i] = x / o.values[i]
	}
	return Variable{values: values, unit: v.Unit().Over(o.Unit())}, nil
}

// AddScalar adds one scalar to every value, converting it to the unit of v
// first.
func (v Variable) AddScalar(s Scalar) (Variable, error) {
	factor, err := metric.Convert(s.Unit(), v.Unit())
	if err != nil {
		return Variable{}, err
	}
	values := make([]float64, len(v.values))
	for i, x := range v.values {
		values[i] = x + s.value*factor
	}
	return Variable{values: values, unit: v.Unit()}, nil
}

// SubScalar subtracts one scalar from every value, converting it to the
// unit of v first.
func (v Variable) SubScalar(s Scalar) (Variable, error) {
	return v.AddScalar(s.Scaled(-1))
}

// MulScalar multiplies every value by a scalar with the units composed.
func (v Variable) MulScalar(s Scalar) Variable {
	return Variable{values: scaled(v.values, s.value), unit: v.Unit().Times(s.Unit())}
}

// DivScalar divides every value by a scalar with the units composed.
func (v Variable) DivScalar(s Scalar) Variable {
	return Variable{values: scaled(v.values, 1/s.value), unit: v.Unit().Over(s.Unit())}
}

// Scaled multiplies every value by a bare number. The unit is unchanged.
func (v Variable) Scaled(k float64) Variable {
	return Variable{values: scaled(v.values, k), unit: v.Unit()}
}

// Equal reports whether o represents the same physical sequence within the
// default relative tolerance.
func (v Variable) Equal(o Variable) bool {
	return v.EqualWithin(o, defaultTolerance)
}

// EqualWithin is Equal with an explicit relative tolerance.
func (v Variable) EqualWithin(o Variable, tolerance float64) bool {
	if len(o.values) != len(v.values) {
		return false
	}
	factor, err := metric.Convert(o.Unit(), v.Unit())
	if err != nil {
		return false
	}
	for i, x := range v.values {
		if !within(x, o.values[i]*factor, tolerance) {
			return false
		}
	}
	return true
}

// Measure returns the values with their unit.
func (v Variable) Measure() (measure.Measurement, error) {
	return measure.New(v.values, v.Unit()), nil
}

func (v Variable) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	sb.WriteString("] ")
	sb.WriteString(v.Unit().String())
	return sb.String()
}

func scaled(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

package measure

import (
	"strconv"
	"strings"

	"github.com/hupe1980/dimgo/metric"
)

// Measurable is implemented by types that can convert themselves into a
// Measurement.
type Measurable interface {
	Measure() (Measurement, error)
}

// Measurement is an immutable sequence of numeric values sharing one unit.
type Measurement struct {
	values []float64
	unit   metric.Unit
}

// New copies values into a Measurement with the given unit.
func New(values []float64, unit metric.Unit) Measurement {
	copied := make([]float64, len(values))
	copy(copied, values)
	return Measurement{values: copied, unit: unit}
}

// NewScalar wraps a single value.
func NewScalar(value float64, unit metric.Unit) Measurement {
	return Measurement{values: []float64{value}, unit: unit}
}

// Measure lets a Measurement stand in anywhere measurable input is accepted.
func (m Measurement) Measure() (Measurement, error) {
	return m, nil
}

// Len returns the number of values.
func (m Measurement) Len() int {
	return len(m.values)
}

// At returns the value at index i.
func (m Measurement) At(i int) float64 {
	return m.values[i]
}

// Values returns a copy of the values.
func (m Measurement) Values() []float64 {
	copied := make([]float64, len(m.values))
	copy(copied, m.values)
	return copied
}

// Unit returns the shared unit.
func (m Measurement) Unit() metric.Unit {
	return m.unit
}

// WithUnit converts every value into the target unit and returns a new
// Measurement. It fails with a *metric.IncompatibleUnitsError when the
// dimension vectors differ.
func (m Measurement) WithUnit(target metric.Unit) (Measurement, error) {
	factor, err := metric.Convert(m.unit, target)
	if err != nil {
		return Measurement{}, err
	}
	converted := make([]float64, len(m.values))
	for i, v := range m.values {
		converted[i] = v * factor
	}
	return Measurement{values: converted, unit: target}, nil
}

// Distribute splits the Measurement into single-value Measurements that all
// carry the shared unit.
func (m Measurement) Distribute() []Measurement {
	out := make([]Measurement, len(m.values))
	for i, v := range m.values {
		out[i] = Measurement{values: []float64{v}, unit: m.unit}
	}
	return out
}

func (m Measurement) String() string {
	rendered := make([]string, len(m.values))
	for i, v := range m.values {
		rendered[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(rendered, ", ") + "] " + m.unit.String()
}

package measure

import (
	"strconv"
	"strings"

	"github.com/hupe1980/dimgo/metric"
)

// Parse extracts numeric values and a shared unit from x.
//
// Accepted forms:
//
//   - anything implementing Measurable
//   - a single number, or a numeric string
//   - a slice of numbers, such as []float64{1.1, 2.3}
//   - a slice of numbers followed by a trailing unit string or metric.Unit,
//     such as []any{1.1, 2.3, "m"}
//   - a two-element form holding a value slice and a unit, such as
//     []any{[]float64{1.1, 2.3}, "m"}
//   - a slice of any of the above, as long as every element resolves to the
//     same unit
//
// Input without a unit is dimensionless. Numeric strings may stand in for
// numbers. The unit is validated against the metric reference table, so an
// unknown symbol fails here rather than at conversion time.
func Parse(x any) (Measurement, error) {
	if m, ok := x.(Measurable); ok {
		return m.Measure()
	}
	v := unwrap(x)
	if v == nil {
		return Measurement{}, &UnmeasurableError{Value: v}
	}
	if s, ok := v.(string); ok {
		return parseNumericString(s)
	}
	if f, ok := asNumber(v); ok {
		return NewScalar(f, metric.One), nil
	}
	elems, ok := asElements(v)
	if !ok {
		return Measurement{}, &UnmeasurableError{Value: x}
	}
	if len(elems) == 0 {
		return Measurement{}, ErrEmptyInput
	}
	return parseElements(elems)
}

// MustParse is like Parse but panics on error.
func MustParse(x any) Measurement {
	m, err := Parse(x)
	if err != nil {
		panic(err)
	}
	return m
}

// unwrap strips redundant single-element wrappers.
func unwrap(x any) any {
	for {
		s, ok := x.([]any)
		if !ok || len(s) != 1 {
			return x
		}
		x = s[0]
	}
}

func parseNumericString(s string) (Measurement, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Measurement{}, ErrEmptyInput
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Measurement{}, &UnmeasurableError{Value: s}
	}
	return NewScalar(f, metric.One), nil
}

func parseElements(elems []any) (Measurement, error) {
	if allNested(elems) {
		return parseNested(elems)
	}

	unitCount, strCount := 0, 0
	for _, e := range elems {
		switch e.(type) {
		case metric.Unit:
			unitCount++
		case string:
			strCount++
		}
	}
	if unitCount > 1 {
		return Measurement{}, ErrMultipleUnits
	}
	if strCount > 1 {
		return salvageStrings(elems)
	}

	if values, ok := allNumbers(elems); ok {
		return Measurement{values: values, unit: metric.One}, nil
	}

	last := elems[len(elems)-1]
	unit, isUnit, err := asUnit(last)
	if err != nil {
		return Measurement{}, err
	}
	if isUnit {
		if values, ok := allNumbers(elems[:len(elems)-1]); ok {
			return Measurement{values: values, unit: unit}, nil
		}
		if len(elems) == 2 {
			if nested, ok := asElements(elems[0]); ok {
				if values, good := allNumbers(nested); good {
					return Measurement{values: values, unit: unit}, nil
				}
			}
		}
	}
	return Measurement{}, &UnmeasurableError{Value: elems}
}

// salvageStrings handles inputs holding several strings by treating numeric
// strings as numbers, first for the whole input and then with a trailing
// unit.
func salvageStrings(elems []any) (Measurement, error) {
	if values, ok := numbersAllowingStrings(elems); ok {
		return Measurement{values: values, unit: metric.One}, nil
	}
	values, ok := numbersAllowingStrings(elems[:len(elems)-1])
	if !ok {
		return Measurement{}, ErrMultipleUnits
	}
	unit, isUnit, err := asUnit(elems[len(elems)-1])
	if err != nil {
		return Measurement{}, err
	}
	if !isUnit {
		return Measurement{}, ErrMultipleUnits
	}
	return Measurement{values: values, unit: unit}, nil
}

// parseNested measures each element independently and requires a single
// shared unit.
func parseNested(elems []any) (Measurement, error) {
	var values []float64
	var unit metric.Unit
	for i, e := range elems {
		m, err := Parse(e)
		if err != nil {
			return Measurement{}, err
		}
		if i == 0 {
			unit = m.unit
		} else if !m.unit.Equal(unit) {
			return Measurement{}, ErrMixedUnits
		}
		values = append(values, m.values...)
	}
	return Measurement{values: values, unit: unit}, nil
}

func allNested(elems []any) bool {
	for _, e := range elems {
		if _, ok := e.(Measurable); ok {
			continue
		}
		if _, ok := e.(string); ok {
			return false
		}
		if _, ok := asElements(e); ok {
			continue
		}
		return false
	}
	return true
}

// asUnit interprets x as a unit if it is a metric.Unit or a unit string.
func asUnit(x any) (metric.Unit, bool, error) {
	switch u := x.(type) {
	case metric.Unit:
		return u, true, nil
	case string:
		parsed, err := metric.Parse(u)
		if err != nil {
			return metric.Unit{}, false, err
		}
		return parsed, true, nil
	}
	return metric.Unit{}, false, nil
}

func asNumber(x any) (float64, bool) {
	switch n := x.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func allNumbers(elems []any) ([]float64, bool) {
	values := make([]float64, 0, len(elems))
	for _, e := range elems {
		f, ok := asNumber(e)
		if !ok {
			return nil, false
		}
		values = append(values, f)
	}
	return values, true
}

func numbersAllowingStrings(elems []any) ([]float64, bool) {
	values := make([]float64, 0, len(elems))
	for _, e := range elems {
		if f, ok := asNumber(e); ok {
			values = append(values, f)
			continue
		}
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		values = append(values, f)
	}
	return values, true
}

// asElements views a supported container as a slice of elements.
func asElements(x any) ([]any, bool) {
	switch s := x.(type) {
	case []any:
		return s, true
	case []float64:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case []float32:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case []int64:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case []string:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case []Measurement:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case [][]float64:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	}
	return nil, false
}

package physical

import (
	"math"

	"github.com/hupe1980/dimgo/measure"
	"github.com/hupe1980/dimgo/metric"
)

// Axis labels one dimension of an Array. The three implementations are
// Points (integer labels), Symbols (categorical strings), and Coordinates
// (measured values with a unit).
type Axis interface {
	Len() int

	subset(indices []int) Axis
	equal(other Axis) bool
}

// Points is an axis of integer labels, such as shell or species numbers.
type Points struct {
	points []int
}

// NewPoints returns an axis labeled by the given integers.
func NewPoints(points ...int) Points {
	copied := make([]int, len(points))
	copy(copied, points)
	return Points{points: copied}
}

// PointsRange returns an axis labeled 0 through n-1.
func PointsRange(n int) Points {
	points := make([]int, n)
	for i := range points {
		points[i] = i
	}
	return Points{points: points}
}

// Len returns the number of labels.
func (p Points) Len() int { return len(p.points) }

// At returns the label at position i. It panics if i is out of range.
func (p Points) At(i int) int { return p.points[i] }

// Values returns a copy of the labels.
func (p Points) Values() []int {
	copied := make([]int, len(p.points))
	copy(copied, p.points)
	return copied
}

func (p Points) subset(indices []int) Axis {
	points := make([]int, len(indices))
	for i, idx := range indices {
		points[i] = p.points[idx]
	}
	return Points{points: points}
}

func (p Points) equal(other Axis) bool {
	o, ok := other.(Points)
	if !ok || len(o.points) != len(p.points) {
		return false
	}
	for i, v := range p.points {
		if o.points[i] != v {
			return false
		}
	}
	return true
}

// locate maps integer labels to their axis positions. Labels match exactly;
// a missing label is out of range.
func (p Points) locate(axis string, targets []int) ([]locator, Axis, error) {
	locs := make([]locator, len(targets))
	matched := make([]int, len(targets))
	for i, target := range targets {
		found := -1
		for j, point := range p.points {
			if point == target {
				found = j
				break
			}
		}
		if found < 0 {
			min, max := intBounds(p.points)
			return nil, nil, &OutOfRangeError{
				Axis:  axis,
				Value: float64(target),
				Min:   float64(min),
				Max:   float64(max),
			}
		}
		locs[i] = locator{lower: found, upper: found}
		matched[i] = target
	}
	return locs, Points{points: matched}, nil
}

func intBounds(values []int) (int, int) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Symbols is a categorical axis of strings, such as species names.
type Symbols struct {
	symbols []string
}

// NewSymbols returns an axis labeled by the given strings.
func NewSymbols(symbols ...string) Symbols {
	copied := make([]string, len(symbols))
	copy(copied, symbols)
	return Symbols{symbols: copied}
}

// Len returns the number of labels.
func (s Symbols) Len() int { return len(s.symbols) }

// At returns the label at position i. It panics if i is out of range.
func (s Symbols) At(i int) string { return s.symbols[i] }

// Values returns a copy of the labels.
func (s Symbols) Values() []string {
	copied := make([]string, len(s.symbols))
	copy(copied, s.symbols)
	return copied
}

func (s Symbols) subset(indices []int) Axis {
	symbols := make([]string, len(indices))
	for i, idx := range indices {
		symbols[i] = s.symbols[idx]
	}
	return Symbols{symbols: symbols}
}

func (s Symbols) equal(other Axis) bool {
	o, ok := other.(Symbols)
	if !ok || len(o.symbols) != len(s.symbols) {
		return false
	}
	for i, v := range s.symbols {
		if o.symbols[i] != v {
			return false
		}
	}
	return true
}

// locate maps string labels to their axis positions. Matching is exact;
// categorical axes never interpolate.
func (s Symbols) locate(axis string, targets []string) ([]locator, Axis, error) {
	locs := make([]locator, len(targets))
	matched := make([]string, len(targets))
	for i, target := range targets {
		found := -1
		for j, symbol := range s.symbols {
			if symbol == target {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, nil, &OutOfRangeError{Axis: axis, Symbol: target}
		}
		locs[i] = locator{lower: found, upper: found}
		matched[i] = target
	}
	return locs, Symbols{symbols: matched}, nil
}

// Coordinates is a measured axis: numeric values with a unit, ordered
// ascending or descending.
type Coordinates struct {
	values []float64
	unit   metric.Unit
}

// NewCoordinates returns a measured axis over the given values.
func NewCoordinates(values []float64, unit metric.Unit) Coordinates {
	copied := make([]float64, len(values))
	copy(copied, values)
	return Coordinates{values: copied, unit: orOne(unit)}
}

// Len returns the number of coordinate values.
func (c Coordinates) Len() int { return len(c.values) }

// At returns the coordinate at position i. It panics if i is out of range.
func (c Coordinates) At(i int) float64 { return c.values[i] }

// Values returns a copy of the coordinate values.
func (c Coordinates) Values() []float64 {
	copied := make([]float64, len(c.values))
	copy(copied, c.values)
	return copied
}

// Unit returns the unit of the coordinate values.
func (c Coordinates) Unit() metric.Unit { return c.unit }

// WithUnit converts the coordinates to a compatible unit.
func (c Coordinates) WithUnit(unit metric.Unit) (Coordinates, error) {
	factor, err := metric.Convert(c.unit, unit)
	if err != nil {
		return Coordinates{}, err
	}
	values := make([]float64, len(c.values))
	for i, v := range c.values {
		values[i] = v * factor
	}
	return Coordinates{values: values, unit: unit}, nil
}

// Measure returns the coordinate values with their unit.
func (c Coordinates) Measure() (measure.Measurement, error) {
	return measure.New(c.values, c.unit), nil
}

func (c Coordinates) subset(indices []int) Axis {
	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return Coordinates{values: values, unit: c.unit}
}

func (c Coordinates) equal(other Axis) bool {
	o, ok := other.(Coordinates)
	if !ok || len(o.values) != len(c.values) || !o.unit.Equal(c.unit) {
		return false
	}
	for i, v := range c.values {
		if o.values[i] != v {
			return false
		}
	}
	return true
}

// locate translates measured targets into axis positions. The target values
// are first converted into the axis unit; a unitless measurement is read in
// the axis unit directly. A converted value within tolerance of a stored
// coordinate resolves to that exact position. A value strictly between two
// neighboring coordinates resolves to a weighted bracket. A value outside
// the covered range is an error; there is no clamping.
func (c Coordinates) locate(axis string, m measure.Measurement, tolerance float64) ([]locator, Axis, error) {
	values := m.Values()
	if !m.Unit().Equal(metric.One) {
		factor, err := metric.Convert(m.Unit(), c.unit)
		if err != nil {
			return nil, nil, err
		}
		for i := range values {
			values[i] *= factor
		}
	}
	locs := make([]locator, len(values))
	for i, v := range values {
		loc, err := c.bracket(axis, v, tolerance)
		if err != nil {
			return nil, nil, err
		}
		locs[i] = loc
	}
	return locs, Coordinates{values: values, unit: c.unit}, nil
}

// bracket finds the position of one value, already in the axis unit.
func (c Coordinates) bracket(axis string, v, tolerance float64) (locator, error) {
	n := len(c.values)
	if n == 0 {
		return locator{}, &OutOfRangeError{Axis: axis, Value: v}
	}
	// Exact match wins over interpolation, including targets that drift a
	// few ulps past an endpoint during unit conversion.
	nearest := 0
	distance := math.Abs(v - c.values[0])
	for i, cv := range c.values[1:] {
		if d := math.Abs(v - cv); d < distance {
			nearest, distance = i+1, d
		}
	}
	if within(v, c.values[nearest], tolerance) {
		return locator{lower: nearest, upper: nearest}, nil
	}
	min, max := c.values[0], c.values[n-1]
	ascending := max >= min
	if !ascending {
		min, max = max, min
	}
	if n == 1 || v < min || v > max {
		return locator{}, &OutOfRangeError{Axis: axis, Value: v, Min: min, Max: max}
	}
	lower := -1
	for i := 0; i < n-1; i++ {
		lo, hi := c.values[i], c.values[i+1]
		if !ascending {
			lo, hi = hi, lo
		}
		if lo <= v && v <= hi {
			lower = i
			break
		}
	}
	if lower < 0 {
		return locator{}, &OutOfRangeError{Axis: axis, Value: v, Min: min, Max: max}
	}
	upper := lower + 1
	weight := (v - c.values[lower]) / (c.values[upper] - c.values[lower])
	return locator{lower: lower, upper: upper, weight: weight}, nil
}

// within reports whether a is within relative tolerance of b.
func within(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tolerance*math.Max(math.Abs(a), math.Abs(b))
}

// orOne substitutes the dimensionless unit for a zero-valued Unit so that
// zero-value construction stays usable.
func orOne(u metric.Unit) metric.Unit {
	if u.Scale() == 0 {
		return metric.One
	}
	return u
}

package physical

import (
	"fmt"

	"github.com/hupe1980/dimgo/measure"
	"github.com/hupe1980/dimgo/metric"
)

// Array is an N-dimensional block of values with a unit and named axes.
// Data is stored in row-major order.
type Array struct {
	data  []float64
	shape []int
	unit  metric.Unit
	axes  Axes
}

// NewArray builds an array from row-major data. The product of the shape
// must equal the data length. A zero-valued Axes labels the dimensions
// x0, x1, ... with positional points; otherwise the axes must match the
// shape dimension for dimension.
func NewArray(data []float64, shape []int, unit metric.Unit, axes Axes) (Array, error) {
	if len(shape) == 0 {
		return Array{}, fmt.Errorf("physical: array needs at least one dimension")
	}
	size := 1
	for _, n := range shape {
		if n < 0 {
			return Array{}, fmt.Errorf("physical: negative dimension length %d", n)
		}
		size *= n
	}
	if size != len(data) {
		return Array{}, fmt.Errorf("%w: shape %v wants %d values, got %d",
			ErrShapeMismatch, shape, size, len(data))
	}
	if axes.Len() == 0 {
		axes = defaultAxes(shape)
	}
	if axes.Len() != len(shape) {
		return Array{}, fmt.Errorf("%w: %d axes for %d dimensions",
			ErrShapeMismatch, axes.Len(), len(shape))
	}
	for i, name := range axes.names {
		axis := axes.axes[name]
		if axis.Len() != shape[i] {
			return Array{}, &AxisShapeError{Dimension: name, AxisLen: axis.Len(), Want: shape[i]}
		}
	}
	copiedData := make([]float64, len(data))
	copy(copiedData, data)
	copiedShape := make([]int, len(shape))
	copy(copiedShape, shape)
	return Array{data: copiedData, shape: copiedShape, unit: orOne(unit), axes: axes}, nil
}

// MustArray is like NewArray but panics on error. Intended for fixtures.
func MustArray(data []float64, shape []int, unit metric.Unit, axes Axes) Array {
	a, err := NewArray(data, shape, unit, axes)
	if err != nil {
		panic(err)
	}
	return a
}

// Rank returns the number of dimensions.
func (a Array) Rank() int { return len(a.shape) }

// Size returns the total number of values.
func (a Array) Size() int { return len(a.data) }

// Shape returns a copy of the per-dimension lengths.
func (a Array) Shape() []int {
	shape := make([]int, len(a.shape))
	copy(shape, a.shape)
	return shape
}

// Unit returns the unit.
func (a Array) Unit() metric.Unit { return orOne(a.unit) }

// Axes returns the named axes.
func (a Array) Axes() Axes { return a.axes }

// Values returns a copy of the row-major data.
func (a Array) Values() []float64 {
	values := make([]float64, len(a.data))
	copy(values, a.data)
	return values
}

// At returns the value at a full set of integer coordinates.
func (a Array) At(coords ...int) (Scalar, error) {
	offset, err := a.offset(coords)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{value: a.data[offset], unit: a.Unit()}, nil
}

func (a Array) offset(coords []int) (int, error) {
	if len(coords) != len(a.shape) {
		return 0, fmt.Errorf("%w: %d coordinates for rank %d",
			ErrShapeMismatch, len(coords), len(a.shape))
	}
	offset := 0
	for d, c := range coords {
		if c < 0 || c >= a.shape[d] {
			return 0, fmt.Errorf("%w: coordinate %d on dimension %q of length %d",
				ErrIndexRange, c, a.axes.names[d], a.shape[d])
		}
		offset = offset*a.shape[d] + c
	}
	return offset, nil
}

// WithUnit converts the array to a compatible unit. The shape and axes are
// unchanged; only the data rescales.
func (a Array) WithUnit(unit metric.Unit) (Array, error) {
	factor, err := metric.Convert(a.Unit(), unit)
	if err != nil {
		return Array{}, err
	}
	return Array{data: scaled(a.data, factor), shape: a.shape, unit: unit, axes: a.axes}, nil
}

// Add returns the elementwise sum a + o. The other operand is converted to
// the unit of a first; shapes must match.
func (a Array) Add(o Array) (Array, error) {
	return a.combine(o, 1)
}

// Sub returns the elementwise difference a - o, converting the other
// operand to the unit of a first.
func (a Array) Sub(o Array) (Array, error) {
	return a.combine(o, -1)
}

func (a Array) combine(o Array, sign float64) (Array, error) {
	if !sameShape(a.shape, o.shape) {
		return Array{}, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, o.shape)
	}
	factor, err := metric.Convert(o.Unit(), a.Unit())
	if err != nil {
		return Array{}, err
	}
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = x + sign*factor*o.data[i]
	}
	return Array{data: data, shape: a.shape, unit: a.Unit(), axes: a.axes}, nil
}

// Mul returns the elementwise product with the units composed. Shapes must
// match.
func (a Array) Mul(o Array) (Array, error) {
	if !sameShape(a.shape, o.shape) {
		return Array{}, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, o.shape)
	}
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = x * o.data[i]
	}
	return Array{data: data, shape: a.shape, unit: a.Unit().Times(o.Unit()), axes: a.axes}, nil
}

// Div returns the elementwise quotient with the units composed. Shapes must
// match.
func (a Array) Div(o Array) (Array, error) {
	if !sameShape(a.shape, o.shape) {
		return Array{}, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, o.shape)
	}
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = x / o.data[i]
	}
	return Array{data: data, shape: a.shape, unit: a.Unit().Over(o.Unit()), axes: a.axes}, nil
}

// AddScalar adds one scalar to every value, converting it to the unit of a
// first.
func (a Array) AddScalar(s Scalar) (Array, error) {
	factor, err := metric.Convert(s.Unit(), a.Unit())
	if err != nil {
		return Array{}, err
	}
	data := make([]float64, len(a.data))
	for i, x := range a.data {
		data[i] = x + s.value*factor
	}
	return Array{data: data, shape: a.shape, unit: a.Unit(), axes: a.axes}, nil
}

// SubScalar subtracts one scalar from every value, converting it to the
// unit of a first.
func (a Array) SubScalar(s Scalar) (Array, error) {
	return a.AddScalar(s.Scaled(-1))
}

// MulScalar multiplies every value by a scalar with the units composed.
func (a Array) MulScalar(s Scalar) Array {
	return Array{data: scaled(a.data, s.value), shape: a.shape, unit: a.Unit().Times(s.Unit()), axes: a.axes}
}

// DivScalar divides every value by a scalar with the units composed.
func (a Array) DivScalar(s Scalar) Array {
	return Array{data: scaled(a.data, 1/s.value), shape: a.shape, unit: a.Unit().Over(s.Unit()), axes: a.axes}
}

// Scaled multiplies every value by a bare number. The unit is unchanged.
func (a Array) Scaled(k float64) Array {
	return Array{data: scaled(a.data, k), shape: a.shape, unit: a.Unit(), axes: a.axes}
}

// Equal reports whether o represents the same physical array within the
// default relative tolerance: same shape, equal axes, and values that agree
// after converting o to the unit of a.
func (a Array) Equal(o Array) bool {
	return a.EqualWithin(o, defaultTolerance)
}

// EqualWithin is Equal with an explicit relative tolerance.
func (a Array) EqualWithin(o Array, tolerance float64) bool {
	if !sameShape(a.shape, o.shape) || !a.axes.Equal(o.axes) {
		return false
	}
	factor, err := metric.Convert(o.Unit(), a.Unit())
	if err != nil {
		return false
	}
	for i, x := range a.data {
		if !within(x, o.data[i]*factor, tolerance) {
			return false
		}
	}
	return true
}

// Slice subsets the array dimension by dimension. Missing trailing
// arguments keep their dimension whole. Every dimension survives in the
// result; selecting a single position yields a length-1 dimension.
func (a Array) Slice(args ...IndexArg) (Array, error) {
	if len(args) > len(a.shape) {
		return Array{}, fmt.Errorf("%w: %d index arguments for rank %d",
			ErrShapeMismatch, len(args), len(a.shape))
	}
	indices := make([][]int, len(a.shape))
	outShape := make([]int, len(a.shape))
	for d := range a.shape {
		arg := IndexArg(All())
		if d < len(args) && args[d] != nil {
			arg = args[d]
		}
		idx, err := arg.resolve(a.shape[d])
		if err != nil {
			return Array{}, fmt.Errorf("dimension %q: %w", a.axes.names[d], err)
		}
		indices[d] = idx
		outShape[d] = len(idx)
	}
	out := make([]float64, prod(outShape))
	if len(out) > 0 {
		coords := make([]int, len(outShape))
		for pos := range out {
			offset := 0
			for d := range coords {
				offset = offset*a.shape[d] + indices[d][coords[d]]
			}
			out[pos] = a.data[offset]
			increment(coords, outShape)
		}
	}
	entries := make([]NamedAxis, len(a.axes.names))
	for d, name := range a.axes.names {
		entries[d] = Named(name, a.axes.axes[name].subset(indices[d]))
	}
	axes, err := NewAxes(entries...)
	if err != nil {
		return Array{}, err
	}
	return Array{data: out, shape: outShape, unit: a.Unit(), axes: axes}, nil
}

// Transpose permutes the dimensions by position. With no arguments the
// array is returned unchanged.
func (a Array) Transpose(order ...int) (Array, error) {
	if len(order) == 0 {
		return a, nil
	}
	axes, err := a.axes.Permute(order...)
	if err != nil {
		return Array{}, err
	}
	return a.transposed(order, axes), nil
}

// TransposeNamed permutes the dimensions by axis name.
func (a Array) TransposeNamed(names ...string) (Array, error) {
	if len(names) == 0 {
		return a, nil
	}
	axes, err := a.axes.PermuteNamed(names...)
	if err != nil {
		return Array{}, err
	}
	order := make([]int, len(names))
	for i, name := range names {
		order[i] = a.axes.Index(name)
	}
	return a.transposed(order, axes), nil
}

func (a Array) transposed(order []int, axes Axes) Array {
	inStrides := strides(a.shape)
	outShape := make([]int, len(order))
	for i, idx := range order {
		outShape[i] = a.shape[idx]
	}
	out := make([]float64, len(a.data))
	if len(out) > 0 {
		coords := make([]int, len(outShape))
		for pos := range out {
			offset := 0
			for i, c := range coords {
				offset += c * inStrides[order[i]]
			}
			out[pos] = a.data[offset]
			increment(coords, outShape)
		}
	}
	return Array{data: out, shape: outShape, unit: a.Unit(), axes: axes}
}

// Flatten returns the row-major data as a Variable with the same unit.
func (a Array) Flatten() Variable {
	return NewVariable(a.data, a.Unit())
}

// Measure returns the flattened values with their unit.
func (a Array) Measure() (measure.Measurement, error) {
	return measure.New(a.data, a.Unit()), nil
}

func (a Array) String() string {
	return fmt.Sprintf("Array(shape=%v, unit=%s, axes=%s)", a.shape, a.Unit(), a.axes)
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, n := range a {
		if b[i] != n {
			return false
		}
	}
	return true
}

func prod(shape []int) int {
	size := 1
	for _, n := range shape {
		size *= n
	}
	return size
}

func strides(shape []int) []int {
	out := make([]int, len(shape))
	stride := 1
	for d := len(shape) - 1; d >= 0; d-- {
		out[d] = stride
		stride *= shape[d]
	}
	return out
}

// increment advances row-major odometer coordinates by one position.
func increment(coords, shape []int) {
	for d := len(coords) - 1; d >= 0; d-- {
		coords[d]++
		if coords[d] < shape[d] {
			return
		}
		coords[d] = 0
	}
}

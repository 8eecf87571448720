package physical

import (
	"fmt"

	"github.com/hupe1980/dimgo/measure"
)

// locator pins one target to an axis: either an exact position
// (lower == upper, weight 0) or a weighted bracket between two neighboring
// positions.
type locator struct {
	lower  int
	upper  int
	weight float64
}

// Position is the result of locating target values along one array axis.
type Position struct {
	dimension string
	locs      []locator
	axis      Axis
}

// Dimension returns the name of the located axis.
func (p Position) Dimension() string { return p.dimension }

// Len returns the number of located targets.
func (p Position) Len() int { return len(p.locs) }

// IsExact reports whether every target resolved to a stored axis position.
func (p Position) IsExact() bool {
	for _, loc := range p.locs {
		if loc.lower != loc.upper {
			return false
		}
	}
	return true
}

// Indices returns the exact axis positions. The second result is false when
// any target fell between stored positions.
func (p Position) Indices() ([]int, bool) {
	indices := make([]int, len(p.locs))
	for i, loc := range p.locs {
		if loc.lower != loc.upper {
			return nil, false
		}
		indices[i] = loc.lower
	}
	return indices, true
}

// Nearest returns one axis position per target, rounding bracketed targets
// to the closer neighbor. A target exactly halfway rounds to the lower
// position.
func (p Position) Nearest() []int {
	indices := make([]int, len(p.locs))
	for i, loc := range p.locs {
		if loc.weight > 0.5 {
			indices[i] = loc.upper
		} else {
			indices[i] = loc.lower
		}
	}
	return indices
}

// Bracket returns the neighboring positions and blend weight for target i.
// Exact targets return equal positions and weight 0.
func (p Position) Bracket(i int) (lower, upper int, weight float64) {
	loc := p.locs[i]
	return loc.lower, loc.upper, loc.weight
}

type indexOptions struct {
	tolerance float64
}

// IndexOption configures physical index resolution.
type IndexOption func(*indexOptions)

// WithTolerance sets the relative tolerance for treating a target as an
// exact coordinate match.
func WithTolerance(tolerance float64) IndexOption {
	return func(o *indexOptions) {
		o.tolerance = tolerance
	}
}

func applyIndexOptions(opts []IndexOption) indexOptions {
	options := indexOptions{tolerance: defaultTolerance}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Locate translates index targets for one axis into positions.
//
// Coordinate axes accept anything measurable (a number, a value list, a
// value with a unit, a Measurement); the measured values convert into the
// axis unit before the search, and a measurement without a unit is read in
// the axis unit directly. Point axes accept int or []int and symbol axes
// accept string or []string; both match exactly.
func (a Array) Locate(dimension string, target any, opts ...IndexOption) (Position, error) {
	options := applyIndexOptions(opts)
	axis, ok := a.axes.Get(dimension)
	if !ok {
		return Position{}, fmt.Errorf("%w: %q", ErrUnknownAxis, dimension)
	}
	var (
		locs        []locator
		replacement Axis
		err         error
	)
	switch axis := axis.(type) {
	case Coordinates:
		var m measure.Measurement
		m, err = measure.Parse(target)
		if err != nil {
			return Position{}, fmt.Errorf("axis %q: %w", dimension, err)
		}
		locs, replacement, err = axis.locate(dimension, m, options.tolerance)
	case Symbols:
		var symbols []string
		symbols, err = symbolTargets(target)
		if err == nil {
			locs, replacement, err = axis.locate(dimension, symbols)
		}
	case Points:
		var points []int
		points, err = pointTargets(target)
		if err == nil {
			locs, replacement, err = axis.locate(dimension, points)
		}
	default:
		err = fmt.Errorf("%w: axis %q has unsupported type %T", ErrInvalidTarget, dimension, axis)
	}
	if err != nil {
		return Position{}, err
	}
	return Position{dimension: dimension, locs: locs, axis: replacement}, nil
}

// Select resolves targets on one or more axes and extracts the matching
// subarray. Bracketed targets blend the two neighboring slices by their
// weight. Every selected axis keeps one slot per target, so the rank never
// changes.
func (a Array) Select(targets map[string]any, opts ...IndexOption) (Array, error) {
	for name := range targets {
		if _, ok := a.axes.Get(name); !ok {
			return Array{}, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
		}
	}
	out := a
	for _, name := range a.axes.Names() {
		target, ok := targets[name]
		if !ok {
			continue
		}
		position, err := out.Locate(name, target, opts...)
		if err != nil {
			return Array{}, err
		}
		out, err = out.Extract(position)
		if err != nil {
			return Array{}, err
		}
	}
	return out, nil
}

// Extract applies a resolved Position to the array. The positioned axis is
// replaced by the located targets; all other axes are untouched.
func (a Array) Extract(position Position) (Array, error) {
	d := a.axes.Index(position.dimension)
	if d < 0 {
		return Array{}, fmt.Errorf("%w: %q", ErrUnknownAxis, position.dimension)
	}
	n := a.shape[d]
	inner := prod(a.shape[d+1:])
	outer := prod(a.shape[:d])
	m := len(position.locs)
	out := make([]float64, outer*m*inner)
	for o := 0; o < outer; o++ {
		for t, loc := range position.locs {
			dst := (o*m + t) * inner
			lo := (o*n + loc.lower) * inner
			if loc.lower == loc.upper {
				copy(out[dst:dst+inner], a.data[lo:lo+inner])
				continue
			}
			hi := (o*n + loc.upper) * inner
			w := loc.weight
			for i := 0; i < inner; i++ {
				out[dst+i] = (1-w)*a.data[lo+i] + w*a.data[hi+i]
			}
		}
	}
	shape := make([]int, len(a.shape))
	copy(shape, a.shape)
	shape[d] = m
	axes, err := a.axes.Replace(position.dimension, position.axis)
	if err != nil {
		return Array{}, err
	}
	return Array{data: out, shape: shape, unit: a.Unit(), axes: axes}, nil
}

func symbolTargets(target any) ([]string, error) {
	switch target := target.(type) {
	case string:
		return []string{target}, nil
	case []string:
		return target, nil
	case []any:
		symbols := make([]string, len(target))
		for i, v := range target {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %v (%T) on a symbol axis", ErrInvalidTarget, v, v)
			}
			symbols[i] = s
		}
		return symbols, nil
	}
	return nil, fmt.Errorf("%w: %v (%T) on a symbol axis", ErrInvalidTarget, target, target)
}

func pointTargets(target any) ([]int, error) {
	switch target := target.(type) {
	case int:
		return []int{target}, nil
	case []int:
		return target, nil
	case []any:
		points := make([]int, len(target))
		for i, v := range target {
			p, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("%w: %v (%T) on a point axis", ErrInvalidTarget, v, v)
			}
			points[i] = p
		}
		return points, nil
	}
	return nil, fmt.Errorf("%w: %v (%T) on a point axis", ErrInvalidTarget, target, target)
}

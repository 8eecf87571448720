package physical

import (
	"fmt"
	"strings"
)

// NamedAxis pairs a dimension name with its axis.
type NamedAxis struct {
	Name string
	Axis Axis
}

// Named is a convenience constructor for NamedAxis values.
func Named(name string, axis Axis) NamedAxis {
	return NamedAxis{Name: name, Axis: axis}
}

// Axes is an ordered mapping from dimension name to axis. The zero value is
// an empty collection. Axes values are immutable; methods return new
// instances.
type Axes struct {
	names []string
	axes  map[string]Axis
}

// NewAxes builds an axis collection in the given order. Duplicate dimension
// names are an error.
func NewAxes(entries ...NamedAxis) (Axes, error) {
	names := make([]string, 0, len(entries))
	axes := make(map[string]Axis, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return Axes{}, fmt.Errorf("physical: empty axis name")
		}
		if entry.Axis == nil {
			return Axes{}, fmt.Errorf("physical: axis %q is nil", entry.Name)
		}
		if _, ok := axes[entry.Name]; ok {
			return Axes{}, fmt.Errorf("physical: duplicate axis %q", entry.Name)
		}
		names = append(names, entry.Name)
		axes[entry.Name] = entry.Axis
	}
	return Axes{names: names, axes: axes}, nil
}

// MustAxes is like NewAxes but panics on error. Intended for fixtures and
// literal axis sets.
func MustAxes(entries ...NamedAxis) Axes {
	axes, err := NewAxes(entries...)
	if err != nil {
		panic(err)
	}
	return axes
}

// defaultAxes labels each dimension x0, x1, ... with positional points,
// matching the shape.
func defaultAxes(shape []int) Axes {
	entries := make([]NamedAxis, len(shape))
	for i, n := range shape {
		entries[i] = Named(fmt.Sprintf("x%d", i), PointsRange(n))
	}
	axes, _ := NewAxes(entries...)
	return axes
}

// Len returns the number of axes.
func (a Axes) Len() int { return len(a.names) }

// Names returns the dimension names in order.
func (a Axes) Names() []string {
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

// Get returns the axis for the named dimension.
func (a Axes) Get(name string) (Axis, bool) {
	axis, ok := a.axes[name]
	return axis, ok
}

// Index returns the position of the named dimension, or -1.
func (a Axes) Index(name string) int {
	for i, n := range a.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Replace swaps the axis stored under an existing dimension name.
func (a Axes) Replace(name string, axis Axis) (Axes, error) {
	if _, ok := a.axes[name]; !ok {
		return Axes{}, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
	}
	out := a.clone()
	out.axes[name] = axis
	return out, nil
}

// Without returns the collection with the named dimension removed. A missing
// name is ignored.
func (a Axes) Without(name string) Axes {
	names := make([]string, 0, len(a.names))
	axes := make(map[string]Axis, len(a.names))
	for _, n := range a.names {
		if n == name {
			continue
		}
		names = append(names, n)
		axes[n] = a.axes[n]
	}
	return Axes{names: names, axes: axes}
}

// Extract returns the subset of axes named, in the given order.
func (a Axes) Extract(names ...string) (Axes, error) {
	if len(names) == 0 {
		return Axes{}, fmt.Errorf("physical: no axes to extract")
	}
	entries := make([]NamedAxis, len(names))
	for i, name := range names {
		axis, ok := a.axes[name]
		if !ok {
			return Axes{}, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
		}
		entries[i] = Named(name, axis)
	}
	return NewAxes(entries...)
}

// Permute reorders the axes by position. The order must name every axis
// exactly once.
func (a Axes) Permute(order ...int) (Axes, error) {
	if len(order) != len(a.names) {
		return Axes{}, fmt.Errorf("%w: permutation has %d entries for %d axes",
			ErrShapeMismatch, len(order), len(a.names))
	}
	seen := make([]bool, len(a.names))
	entries := make([]NamedAxis, len(order))
	for i, idx := range order {
		if idx < 0 || idx >= len(a.names) || seen[idx] {
			return Axes{}, fmt.Errorf("%w: bad permutation entry %d", ErrIndexRange, idx)
		}
		seen[idx] = true
		name := a.names[idx]
		entries[i] = Named(name, a.axes[name])
	}
	return NewAxes(entries...)
}

// PermuteNamed reorders the axes by name. The order must name every axis
// exactly once.
func (a Axes) PermuteNamed(names ...string) (Axes, error) {
	if len(names) != len(a.names) {
		return Axes{}, fmt.Errorf("%w: permutation has %d entries for %d axes",
			ErrShapeMismatch, len(names), len(a.names))
	}
	return a.Extract(names...)
}

// Equal reports whether both collections hold the same dimensions, in the
// same order, with equal axis content.
func (a Axes) Equal(b Axes) bool {
	if len(a.names) != len(b.names) {
		return false
	}
	for i, name := range a.names {
		if b.names[i] != name {
			return false
		}
		if !a.axes[name].equal(b.axes[name]) {
			return false
		}
	}
	return true
}

// String lists the dimensions with their axis lengths.
func (a Axes) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range a.names {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %d", name, a.axes[name].Len())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (a Axes) clone() Axes {
	names := make([]string, len(a.names))
	copy(names, a.names)
	axes := make(map[string]Axis, len(a.axes))
	for name, axis := range a.axes {
		axes[name] = axis
	}
	return Axes{names: names, axes: axes}
}

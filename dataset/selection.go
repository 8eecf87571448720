package dataset

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/dimgo/physical"
)

// Selection is a compressed bitmap over flattened array offsets.
// It wraps a 32-bit Roaring Bitmap, so a selection addresses arrays of up
// to 2^32 elements.
type Selection struct {
	rb *roaring.Bitmap
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{rb: roaring.New()}
}

// Add adds flattened offsets to the selection.
func (s *Selection) Add(offsets ...uint32) {
	s.rb.AddMany(offsets)
}

// Remove removes an offset from the selection.
func (s *Selection) Remove(offset uint32) {
	s.rb.Remove(offset)
}

// Contains reports whether an offset is selected.
func (s *Selection) Contains(offset uint32) bool {
	return s.rb.Contains(offset)
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of selected offsets.
func (s *Selection) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	return &Selection{rb: s.rb.Clone()}
}

// And intersects the selection with another one in place.
func (s *Selection) And(other *Selection) {
	s.rb.And(other.rb)
}

// Or unions the selection with another one in place.
func (s *Selection) Or(other *Selection) {
	s.rb.Or(other.rb)
}

// Iterator returns an iterator over the selected offsets in ascending
// order.
func (s *Selection) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// ToArray returns the selected offsets in ascending order.
func (s *Selection) ToArray() []uint32 {
	return s.rb.ToArray()
}

// WhereCoordinates selects every array element whose coordinate along the
// named dimension satisfies the predicate. The predicate sees coordinate
// values in the axis unit.
func WhereCoordinates(arr physical.Array, dimension string, pred func(float64) bool) (*Selection, error) {
	axes := arr.Axes()
	d := axes.Index(dimension)
	if d < 0 {
		return nil, fmt.Errorf("dataset: %w: %q", physical.ErrUnknownAxis, dimension)
	}
	axis, _ := axes.Get(dimension)
	coords, ok := axis.(physical.Coordinates)
	if !ok {
		return nil, fmt.Errorf("dataset: axis %q is not a coordinate axis", dimension)
	}

	keep := make([]bool, coords.Len())
	for i := range keep {
		keep[i] = pred(coords.At(i))
	}

	// Selected positions along axis d cover contiguous runs of length
	// stride, repeated once per outer slice.
	shape := arr.Shape()
	stride := 1
	for _, n := range shape[d+1:] {
		stride *= n
	}
	n := shape[d]
	outer := 1
	for _, m := range shape[:d] {
		outer *= m
	}

	sel := NewSelection()
	for o := 0; o < outer; o++ {
		for i, ok := range keep {
			if !ok {
				continue
			}
			base := uint64((o*n + i) * stride)
			sel.rb.AddRange(base, base+uint64(stride))
		}
	}
	return sel, nil
}

// Compress gathers the selected elements of an array into a flat variable
// carrying the array unit. Offsets beyond the array size are ignored.
func Compress(arr physical.Array, sel *Selection) physical.Variable {
	values := arr.Values()
	out := make([]float64, 0, sel.Cardinality())
	for off := range sel.Iterator() {
		if int(off) >= len(values) {
			break
		}
		out = append(out, values[off])
	}
	return physical.NewVariable(out, arr.Unit())
}

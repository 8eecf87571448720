package physical

import "fmt"

// IndexArg selects positions along one array dimension for Array.Slice.
type IndexArg interface {
	resolve(length int) ([]int, error)
}

type allArg struct{}

// All keeps every position of a dimension.
func All() IndexArg { return allArg{} }

func (allArg) resolve(length int) ([]int, error) {
	indices := make([]int, length)
	for i := range indices {
		indices[i] = i
	}
	return indices, nil
}

type atArg struct {
	i int
}

// At selects a single position. The dimension survives with length 1.
func At(i int) IndexArg { return atArg{i: i} }

func (a atArg) resolve(length int) ([]int, error) {
	if a.i < 0 || a.i >= length {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexRange, a.i, length)
	}
	return []int{a.i}, nil
}

type rangeArg struct {
	lo, hi int
}

// Range selects the half-open position interval [lo, hi).
func Range(lo, hi int) IndexArg { return rangeArg{lo: lo, hi: hi} }

func (r rangeArg) resolve(length int) ([]int, error) {
	if r.lo < 0 || r.hi < r.lo || r.hi > length {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrIndexRange, r.lo, r.hi, length)
	}
	indices := make([]int, r.hi-r.lo)
	for i := range indices {
		indices[i] = r.lo + i
	}
	return indices, nil
}

type indicesArg struct {
	indices []int
}

// Indices selects explicit positions in the given order. Repeats are
// allowed.
func Indices(indices ...int) IndexArg {
	copied := make([]int, len(indices))
	copy(copied, indices)
	return indicesArg{indices: copied}
}

func (a indicesArg) resolve(length int) ([]int, error) {
	for _, i := range a.indices {
		if i < 0 || i >= length {
			return nil, fmt.Errorf("%w: %d of %d", ErrIndexRange, i, length)
		}
	}
	indices := make([]int, len(a.indices))
	copy(indices, a.indices)
	return indices, nil
}

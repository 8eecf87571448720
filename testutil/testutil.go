package testutil

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
)

// RNG is a seeded random source safe for concurrent use. Tests that need
// reproducible payloads construct one with a fixed seed.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewPCG(0, uint64(seed))), seed: seed}
}

// Reset rewinds the generator to its initial state.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(0, uint64(r.seed)))
}

// Seed returns the seed the generator was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Intn returns a value in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Bytes returns n incompressible bytes, exercising the stored-block
// fallback of the snapshot compressors.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]byte, n)
	var word [8]byte
	for i := 0; i < n; i += 8 {
		binary.LittleEndian.PutUint64(word[:], r.rand.Uint64())
		copy(data[i:], word[:])
	}
	return data
}

// Values returns n values in [0, 1), the shape of a member payload.
func (r *RNG) Values(n int) []float64 {
	return r.ValuesIn(n, 0, 1)
}

// ValuesIn returns n values in [lo, hi).
func (r *RNG) ValuesIn(n int, lo, hi float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]float64, n)
	for i := range values {
		values[i] = lo + r.rand.Float64()*(hi-lo)
	}
	return values
}

// Grid returns n ascending, evenly spaced values covering [lo, hi], the
// shape of a time or radius axis.
func Grid(n int, lo, hi float64) []float64 {
	values := make([]float64, n)
	if n == 1 {
		values[0] = lo
		return values
	}
	step := (hi - lo) / float64(n-1)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	values[n-1] = hi
	return values
}

// LogGrid returns n ascending, logarithmically spaced values covering
// [lo, hi], the shape of an energy-channel axis. Both bounds must be
// positive.
func LogGrid(n int, lo, hi float64) []float64 {
	values := make([]float64, n)
	if n == 1 {
		values[0] = lo
		return values
	}
	logLo := math.Log(lo)
	step := (math.Log(hi) - logLo) / float64(n-1)
	for i := range values {
		values[i] = math.Exp(logLo + float64(i)*step)
	}
	values[n-1] = hi
	return values
}

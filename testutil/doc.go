// Package testutil provides deterministic data generators for tests.
//
// The helpers produce the shapes the library works with: Grid and LogGrid
// build coordinate axes, RNG.Values builds member payloads, and RNG.Bytes
// builds incompressible block data. Every generator is seeded so failures
// reproduce.
//
//	rng := testutil.NewRNG(42)
//	flux := rng.Values(4096)
//	energies := testutil.LogGrid(32, 0.1, 1000)
package testutil

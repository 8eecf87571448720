// Package dimgo provides a dimensional analysis engine for Go.
//
// Dimgo parses unit expressions into canonical products of powers, tracks
// dimension vectors over the base dimensions, converts between compatible
// units, and carries units through scalar, sequence, and N-dimensional
// array values.
//
// # Quick Start
//
// Package-level helpers use a shared mks engine:
//
//	factor, _ := dimgo.Convert("J", "erg")         // 1e7
//	unit, _ := dimgo.Parse("km / s")               // canonical "km s^-1"
//	m, _ := dimgo.Measure(1.0, 2.0, "m")           // two values in meters
//	s, _ := dimgo.ScalarOf(0.5, "au")              // one value in au
//
// A configured engine:
//
//	eng, err := dimgo.New(
//	    dimgo.WithSystem("cgs"),
//	    dimgo.WithStrictParsing(),
//	    dimgo.WithParseCacheSize(4096),
//	)
//
// Or the fluent builder:
//
//	eng, err := dimgo.CGS().
//	    Strict().
//	    ParseCache(4096).
//	    Build()
//
// # Metric Systems
//
// Units normalize into a metric system, mks or cgs. Each system resolves
// physical quantities to their canonical units:
//
//	energy, _ := eng.UnitOf("energy")  // "J" under mks, "erg" under cgs
//	scale, _ := eng.ScaleOf("km")      // 1000 under mks
//
// # Quantities
//
// The physical package carries units through values:
//
//	v := physical.NewVariable([]float64{1, 2, 3}, dimgo.Unit("km"))
//	meters, _ := v.WithUnit(dimgo.Unit("m"))  // {1000, 2000, 3000} m
//
// Arrays attach named axes and resolve measurable targets to indices,
// interpolating between grid points when the target falls off the grid:
//
//	pos, _ := arr.Locate("radius", []any{0.5, "au"})
//	sub, _ := arr.Extract(pos)
//
// # Datasets and Archives
//
// The dataset package groups named arrays, selects subsets by coordinate
// predicates, and snapshots catalogs into block-compressed archives:
//
//	ds.Save(ctx, archive.NewLocalStore("./data"), "epoch-1.dgs")
//	ds, _ = dataset.Open(ctx, store, "epoch-1.dgs")
//
// Archive stores back onto the local filesystem, memory, S3, or MinIO,
// with optional block caching and an atomic current-snapshot pointer.
//
// # Key Features
//
//   - Canonical unit algebra with exact rational exponents
//   - Dimension vectors over nine independent base dimensions
//   - mks and cgs systems with a shared quantity catalog
//   - Measurable index resolution with two-point interpolation
//   - Unit-aware scalar, variable, and array arithmetic
//   - Block-compressed dataset snapshots (LZ4, zstd)
//   - Cloud-native archives (S3, DynamoDB-backed commits, MinIO)
package dimgo

// Package dataset bundles named physical arrays into a catalog that can be
// filtered, masked, and persisted as a snapshot.
//
// A Dataset is an ordered collection of named physical.Array members, the
// shape a simulation observer hands over: several quantities defined over
// shared axes. Members keep their insertion order so snapshots are
// reproducible byte for byte.
//
// # Selection
//
// Coordinate predicates build a Selection, a compressed bitmap over
// flattened array offsets:
//
//	sel, err := dataset.WhereCoordinates(density, "radius", func(r float64) bool {
//	    return r < 0.5
//	})
//	inner := dataset.Compress(density, sel)
//
// Selections compose with And/Or before extraction.
//
// # Snapshots
//
// Snapshot writes the catalog as a self-describing block stream: a JSON
// header naming the codec and compression, followed by framed blocks of
// the member payloads. Blocks are CRC32C checked and compressed with
// LZ4 or ZSTD (or stored raw).
//
//	var buf bytes.Buffer
//	err := ds.Snapshot(&buf, dataset.WithCompression(dataset.CompressionLZ4))
//	ds2, err := dataset.Load(&buf)
//
// Save and Open move snapshots through any archive.Store backend; OpenAll
// loads several snapshots in parallel.
package dataset

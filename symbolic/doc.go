// Package symbolic implements the algebra of unit expressions.
//
// An Expression is a product of symbols raised to rational exponents, held
// in a canonical form: one term per symbol, sorted by symbol, zero exponents
// removed. Canonicalization makes algebraic equality a simple term-for-term
// comparison and gives every equivalence class a unique string:
//
//	a, _ := symbolic.Parse("m s^-1")
//	b, _ := symbolic.Parse("s^-1 m")
//	c, _ := symbolic.Parse("m / s")
//	// a.Equal(b) && b.Equal(c); all render as "m s^-1"
//
// Expressions compose algebraically:
//
//	force, _ := symbolic.Parse("kg m s^-2")
//	area, _ := symbolic.Parse("m^2")
//	pressure := force.Over(area) // "kg m^-1 s^-2"
//
// The package knows nothing about physics: symbols are opaque strings, and
// "kg" carries no more meaning than "xyz". Binding symbols to dimensions and
// scale factors is the metric package's job.
package symbolic

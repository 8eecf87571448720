// Package measure turns loosely structured caller input into Measurements:
// one or more numeric values sharing a single unit.
//
// A measurable input may be a single number, a numeric string, a slice of
// numbers, a slice of numbers followed by a trailing unit, a two-element
// form holding a value slice and a unit, or a slice of any of these with
// consistent units. Measurements feed physical indexing, where an axis
// position is named by a value plus a unit rather than an integer offset.
package measure

// Package physical implements unit-aware numeric quantities.
//
// Three container types carry values together with a metric unit: Scalar
// (one value), Variable (a sequence), and Array (an N-dimensional block with
// named axes). All three are immutable; operations return new instances.
//
// Arithmetic respects dimensions. Add and Sub convert the right-hand operand
// to the left-hand unit first and fail when the dimension vectors differ.
// Mul and Div compose units through the expression engine without any
// dimensional check. WithUnit rescales values into a compatible unit.
//
// Arrays support physical indexing: Locate translates a measured target
// value (for example "7.2 h" against a time axis in seconds) into an axis
// position, either an exact index or a weighted bracket between neighboring
// coordinates, and Select applies such positions across axes, blending data
// where the target falls between stored coordinates. Subscripting reduces an
// axis to the selected slots but never removes it, so array rank is stable
// under indexing.
package physical

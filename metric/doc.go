// Package metric defines physical units, their dimension vectors, and the
// named metric systems (mks and cgs) that assign a canonical unit to every
// base dimension.
//
// The package recognizes a fixed table of base unit symbols (meter, second,
// gram, joule, ...) optionally scaled by a metric prefix (kilo, centi, ...).
// A unit expression such as "kg m^2 / s^2" resolves to a dimension vector
// over the nine base dimensions and a scale factor relative to the reference
// unit of that vector. Two units are convertible exactly when their dimension
// vectors are equal, and the conversion factor is the ratio of their scales.
package metric

package metric

import (
	"math"
	"sort"
)

// speedOfLight is the speed of light in cm/s. It fixes the scale of the
// Gaussian electromagnetic units (statC, statA, statV).
const speedOfLight = 2.99792458e10

// prefix is a metric prefix applied multiplicatively to a base unit.
type prefix struct {
	symbol string
	name   string
	factor float64
}

// prefixTable lists the metric prefixes from yotta down to yocto.
var prefixTable = []prefix{
	{"Y", "yotta", 1e+24},
	{"Z", "zetta", 1e+21},
	{"E", "exa", 1e+18},
	{"P", "peta", 1e+15},
	{"T", "tera", 1e+12},
	{"G", "giga", 1e+9},
	{"M", "mega", 1e+6},
	{"k", "kilo", 1e+3},
	{"h", "hecto", 1e+2},
	{"da", "deca", 1e+1},
	{"d", "deci", 1e-1},
	{"c", "centi", 1e-2},
	{"m", "milli", 1e-3},
	{"μ", "micro", 1e-6},
	{"n", "nano", 1e-9},
	{"p", "pico", 1e-12},
	{"f", "femto", 1e-15},
	{"a", "atto", 1e-18},
	{"z", "zepto", 1e-21},
	{"y", "yocto", 1e-24},
}

// prefixAliases maps alternative prefix spellings onto table symbols.
var prefixAliases = map[string]string{
	"u": "μ",
}

// baseUnit is one named unit in the reference table. The scale is relative
// to the reference unit for the dimension vector, which is the coherent SI
// unit: meter for L, kilogram for M, second for T, and so on through the
// derived vectors (joule for energy, pascal for pressure, ...).
type baseUnit struct {
	symbol   string
	name     string
	quantity string
	dims     string
	scale    float64
}

// unitTable maps every recognized base unit symbol to its quantity, its
// dimension vector, and its scale. The nucleon and atomic mass unit carry
// the mass dimension so that conversions against gram-based units remain
// well defined.
var unitTable = []baseUnit{
	{"m", "meter", "length", "L", 1.0},
	{"au", "astronomical unit", "length", "L", 1.495978707e11},
	{"Rs", "solar radius", "length", "L", 6.96e8},
	{"g", "gram", "mass", "M", 1e-3},
	{"nuc", "nucleon", "mass number", "M", 1.6605e-27},
	{"amu", "atomic mass unit", "mass number", "M", 1.6605e-27},
	{"s", "second", "time", "T", 1.0},
	{"min", "minute", "time", "T", 60.0},
	{"h", "hour", "time", "T", 3600.0},
	{"d", "day", "time", "T", 86400.0},
	{"A", "ampere", "current", "I", 1.0},
	{"K", "kelvin", "temperature", "H", 1.0},
	{"mol", "mole", "amount", "N", 1.0},
	{"#", "count", "number", "1", 1.0},
	{"cd", "candela", "luminous intensity", "J", 1.0},
	{"rad", "radian", "plane angle", "A", 1.0},
	{"deg", "degree", "plane angle", "A", math.Pi / 180.0},
	{"sr", "steradian", "solid angle", "O", 1.0},
	{"Hz", "hertz", "frequency", "1 / T", 1.0},
	{"J", "joule", "energy", "M L^2 T^-2", 1.0},
	{"erg", "erg", "energy", "M L^2 T^-2", 1e-7},
	{"eV", "electronvolt", "energy", "M L^2 T^-2", 1.6022e-19},
	{"N", "newton", "force", "M L T^-2", 1.0},
	{"dyn", "dyne", "force", "M L T^-2", 1e-5},
	{"Pa", "pascal", "pressure", "M L^-1 T^-2", 1.0},
	{"W", "watt", "power", "M L^2 T^-3", 1.0},
	{"C", "coulomb", "charge", "I T", 1.0},
	{"statC", "statcoulomb", "charge", "I T", 1.0 / (10.0 * speedOfLight)},
	{"statA", "statampere", "current", "I", 1.0 / (10.0 * speedOfLight)},
	{"statV", "statvolt", "potential", "M L^2 T^-3 I^-1", speedOfLight / 1e6},
	{"e", "fundamental charge", "charge", "I T", 1.6022e-19},
	{"V", "volt", "potential", "M L^2 T^-3 I^-1", 1.0},
	{"Ω", "ohm", "resistance", "M L^2 T^-3 I^-2", 1.0},
	{"S", "siemens", "conductance", "M^-1 L^-2 T^3 I^2", 1.0},
	{"F", "farad", "capacitance", "M^-1 L^-2 T^4 I^2", 1.0},
	{"Wb", "weber", "magnetic flux", "M L^2 T^-2 I^-1", 1.0},
	{"Mx", "maxwell", "magnetic flux", "M L^2 T^-2 I^-1", 1e-8},
	{"Oe", "oersted", "magnetic intensity", "I L^-1", 1e3 / (4.0 * math.Pi)},
	{"H", "henry", "inductance", "M L^2 T^-2 I^-2", 1.0},
	{"T", "tesla", "magnetic induction", "M T^-2 I^-1", 1.0},
	{"G", "gauss", "magnetic induction", "M T^-2 I^-1", 1e-4},
	{"lm", "lumen", "luminous flux", "J O", 1.0},
	{"lx", "lux", "illuminance", "J O L^-2", 1.0},
	{"Bq", "becquerel", "radioactivity", "1 / T", 1.0},
	{"Ci", "curie", "radioactivity", "1 / T", 3.7e10},
	{"Gy", "gray", "dosage", "L^2 T^-2", 1.0},
	{"P", "poise", "viscosity", "M L^-1 T^-1", 0.1},
	{"1", "unitless", "identity", "1", 1.0},
}

// unitAliases maps alternative base unit spellings onto table symbols.
var unitAliases = map[string]string{
	"ohm": "Ω",
}

// unitEntry is a table row with its dimension string parsed once.
type unitEntry struct {
	baseUnit
	vector Dimensions
}

var (
	unitIndex       = buildUnitIndex()
	unitNameIndex   = buildUnitNameIndex()
	prefixIndex     = buildPrefixIndex()
	prefixNameIndex = buildPrefixNameIndex()
	prefixesByLen   = buildPrefixesByLen()
)

func buildUnitIndex() map[string]unitEntry {
	index := make(map[string]unitEntry, len(unitTable))
	for _, u := range unitTable {
		index[u.symbol] = unitEntry{baseUnit: u, vector: MustParseDimensions(u.dims)}
	}
	return index
}

func buildUnitNameIndex() map[string]string {
	index := make(map[string]string, len(unitTable))
	for _, u := range unitTable {
		index[u.name] = u.symbol
	}
	return index
}

func buildPrefixIndex() map[string]prefix {
	index := make(map[string]prefix, len(prefixTable))
	for _, p := range prefixTable {
		index[p.symbol] = p
	}
	return index
}

func buildPrefixNameIndex() map[string]prefix {
	index := make(map[string]prefix, len(prefixTable))
	for _, p := range prefixTable {
		index[p.name] = p
	}
	return index
}

// buildPrefixesByLen orders prefix symbols longest first so that splitting a
// unit symbol tries "da" before "d".
func buildPrefixesByLen() []prefix {
	ordered := make([]prefix, len(prefixTable))
	copy(ordered, prefixTable)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].symbol) > len(ordered[j].symbol)
	})
	return ordered
}

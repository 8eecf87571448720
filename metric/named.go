package metric

import "strings"

// namedUnit is a resolved unit symbol: a base unit from the reference table
// scaled by an optional metric prefix.
type namedUnit struct {
	prefix prefix
	base   unitEntry
}

// scale returns the combined scale of the prefix and the base unit. A zero
// prefix factor marks the absence of a prefix.
func (n namedUnit) scale() float64 {
	if n.prefix.factor == 0 {
		return n.base.scale
	}
	return n.prefix.factor * n.base.scale
}

// symbol returns the canonical spelling, prefix symbol plus base symbol.
func (n namedUnit) symbol() string {
	return n.prefix.symbol + n.base.symbol
}

// resolveSymbol splits a unit symbol into a metric prefix and a base unit.
//
// A whole-symbol match always takes precedence over a prefix split, so "cd"
// is the candela rather than a centi-day and "min" is the minute. Prefix
// splits try longer prefix symbols first, so "dam" is the dekameter. Base
// unit names are accepted alongside symbols ("day", "kilometer"), as are the
// alias spellings "ohm" for Ω and a leading "u" for μ. The unitless symbol
// "1" never takes a prefix.
func resolveSymbol(symbol string) (namedUnit, error) {
	if symbol == "" {
		return namedUnit{}, &UnknownSymbolError{Symbol: symbol}
	}
	if base, ok := lookupBase(symbol); ok {
		return namedUnit{base: base}, nil
	}
	if sym, ok := unitNameIndex[symbol]; ok {
		return namedUnit{base: unitIndex[sym]}, nil
	}
	for _, p := range prefixesByLen {
		rest, ok := strings.CutPrefix(symbol, p.symbol)
		if !ok {
			continue
		}
		if base, found := lookupPrefixed(rest); found {
			return namedUnit{prefix: p, base: base}, nil
		}
	}
	if canon, ok := prefixAliases[symbol[:1]]; ok {
		if base, found := lookupPrefixed(symbol[1:]); found {
			return namedUnit{prefix: prefixIndex[canon], base: base}, nil
		}
	}
	for name, p := range prefixNameIndex {
		rest, ok := strings.CutPrefix(symbol, name)
		if !ok || rest == "" {
			continue
		}
		if sym, found := unitNameIndex[rest]; found && sym != "1" {
			return namedUnit{prefix: p, base: unitIndex[sym]}, nil
		}
	}
	return namedUnit{}, &UnknownSymbolError{Symbol: symbol}
}

// lookupBase matches a base unit by symbol, trying alias spellings.
func lookupBase(symbol string) (unitEntry, bool) {
	if base, ok := unitIndex[symbol]; ok {
		return base, true
	}
	if canon, ok := unitAliases[symbol]; ok {
		return unitIndex[canon], true
	}
	return unitEntry{}, false
}

// lookupPrefixed matches the remainder of a prefix split. The unitless
// symbol is excluded so that "m1" stays unknown.
func lookupPrefixed(rest string) (unitEntry, bool) {
	if rest == "" || rest == "1" {
		return unitEntry{}, false
	}
	return lookupBase(rest)
}

package metric

import "strings"

// nonstandard maps unit spellings that appear in simulation output onto
// recognized unit strings.
var nonstandard = map[string]string{
	"julian date":       "day",
	"shell":             "1",
	"cos(mu)":           "1",
	"e-":                "e",
	"# / cm^2 s sr MeV": "# / cm^2 s sr MeV/nuc",
}

// Standardize replaces a non-standard unit string with its recognized
// equivalent, if one is known, and rewrites the first solidus so that
// everything after it forms a single denominator group. The result of
// Standardize("# / cm^2 s sr MeV") is "# / (cm^2 s sr MeV/nuc)".
func Standardize(unit string) string {
	if sub, ok := nonstandard[unit]; ok {
		unit = sub
	}
	num, den, found := strings.Cut(unit, "/")
	if !found {
		return unit
	}
	return strings.TrimSpace(num) + " / (" + strings.TrimSpace(den) + ")"
}

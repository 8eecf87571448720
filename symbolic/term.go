package symbolic

import (
	"github.com/hupe1980/dimgo/ratio"
)

// Term is a single symbol raised to a rational exponent, e.g. "s^-1".
type Term struct {
	Symbol   string
	Exponent ratio.Ratio
}

// NewTerm returns a term for symbol with the given exponent.
func NewTerm(symbol string, exponent ratio.Ratio) Term {
	return Term{Symbol: symbol, Exponent: exponent}
}

// NewTermInt returns a term for symbol with an integer exponent.
func NewTermInt(symbol string, exponent int64) Term {
	return Term{Symbol: symbol, Exponent: ratio.FromInt(exponent)}
}

// Pow returns the term with its exponent scaled by r.
func (t Term) Pow(r ratio.Ratio) Term {
	return Term{Symbol: t.Symbol, Exponent: t.Exponent.Mul(r)}
}

// Equal reports whether two terms have the same symbol and exponent.
func (t Term) Equal(other Term) bool {
	return t.Symbol == other.Symbol && t.Exponent.Equal(other.Exponent)
}

// String renders the term in expression grammar: "m", "s^-1", "m^3/2".
func (t Term) String() string {
	return t.format(StylePlain)
}

func (t Term) format(style Style) string {
	exp := ""
	if !t.Exponent.Equal(ratio.One) {
		switch style {
		case StyleTeX:
			exp = "^{" + t.Exponent.String() + "}"
		default:
			exp = "^" + t.Exponent.String()
		}
	}
	if style == StyleTeX {
		if t.Symbol == "#" {
			return "$" + t.Symbol + exp + "$"
		}
		return `$\mathrm{` + t.Symbol + `}` + exp + "$"
	}
	return t.Symbol + exp
}

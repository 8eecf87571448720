package symbolic

import (
	"sort"
	"strings"

	"github.com/hupe1980/dimgo/ratio"
)

// Style selects the output form of Format.
type Style int

const (
	// StylePlain renders the expression in its own input grammar,
	// e.g. "m s^-1". This is the canonical string form.
	StylePlain Style = iota
	// StyleTeX renders each term for TeX-like display,
	// e.g. `$\mathrm{m}$ $\mathrm{s}^{-1}$`.
	StyleTeX
)

// Expression is a product of symbols raised to rational exponents, held in
// canonical form: terms are sorted by symbol (case-sensitive), at most one
// term per symbol, and no term has a zero exponent. The empty expression is
// the dimensionless identity "1".
//
// Expressions are immutable; all operations return new values. Two
// expressions built from algebraically equivalent input are deeply equal, so
// canonical strings are unique per equivalence class.
type Expression struct {
	terms []Term
}

// Identity returns the dimensionless identity expression.
func Identity() Expression {
	return Expression{}
}

// FromTerms builds an expression from arbitrary terms, combining duplicate
// symbols and canonicalizing the result.
func FromTerms(terms ...Term) Expression {
	return Expression{terms: reduce(terms)}
}

// reduce combines like terms, drops zero exponents, and sorts by symbol.
func reduce(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	combined := make(map[string]ratio.Ratio, len(terms))
	for _, t := range terms {
		if cur, ok := combined[t.Symbol]; ok {
			combined[t.Symbol] = cur.Add(t.Exponent)
		} else {
			combined[t.Symbol] = t.Exponent
		}
	}
	out := make([]Term, 0, len(combined))
	for sym, exp := range combined {
		if exp.IsZero() || sym == "1" {
			continue
		}
		out = append(out, Term{Symbol: sym, Exponent: exp})
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Terms returns a copy of the canonical term list. The identity expression
// returns nil.
func (e Expression) Terms() []Term {
	if len(e.terms) == 0 {
		return nil
	}
	out := make([]Term, len(e.terms))
	copy(out, e.terms)
	return out
}

// Len returns the number of terms.
func (e Expression) Len() int {
	return len(e.terms)
}

// IsIdentity reports whether the expression is the dimensionless "1".
func (e Expression) IsIdentity() bool {
	return len(e.terms) == 0
}

// Exponent returns the exponent of the named symbol, or zero if the symbol
// does not occur.
func (e Expression) Exponent(symbol string) ratio.Ratio {
	for _, t := range e.terms {
		if t.Symbol == symbol {
			return t.Exponent
		}
	}
	return ratio.Zero
}

// Times returns the product e * other.
func (e Expression) Times(other Expression) Expression {
	merged := make([]Term, 0, len(e.terms)+len(other.terms))
	merged = append(merged, e.terms...)
	merged = append(merged, other.terms...)
	return Expression{terms: reduce(merged)}
}

// Over returns the quotient e / other.
func (e Expression) Over(other Expression) Expression {
	return e.Times(other.Inverse())
}

// Inverse returns 1 / e.
func (e Expression) Inverse() Expression {
	return e.Pow(ratio.FromInt(-1))
}

// Pow returns e raised to the rational power r. Raising to the zero power
// yields the identity.
func (e Expression) Pow(r ratio.Ratio) Expression {
	if r.IsZero() || len(e.terms) == 0 {
		return Expression{}
	}
	out := make([]Term, len(e.terms))
	for i, t := range e.terms {
		out[i] = t.Pow(r)
	}
	return Expression{terms: out}
}

// Equal reports algebraic equality: both canonical term lists match exactly.
// There is no numeric tolerance at this layer.
func (e Expression) Equal(other Expression) bool {
	if len(e.terms) != len(other.terms) {
		return false
	}
	for i, t := range e.terms {
		if !t.Equal(other.terms[i]) {
			return false
		}
	}
	return true
}

// String returns the canonical plain-text form, e.g. "m s^-1". The identity
// renders as "1".
func (e Expression) String() string {
	return e.Format(StylePlain)
}

// Format renders the expression in the requested style with terms joined by
// single spaces.
func (e Expression) Format(style Style) string {
	return e.FormatSep(style, " ")
}

// FormatSep renders the expression in the requested style with a custom term
// separator.
func (e Expression) FormatSep(style Style, separator string) string {
	if len(e.terms) == 0 {
		return "1"
	}
	parts := make([]string, len(e.terms))
	for i, t := range e.terms {
		parts[i] = t.format(style)
	}
	return strings.Join(parts, separator)
}

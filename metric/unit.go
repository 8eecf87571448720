package metric

import (
	"errors"
	"math"

	"github.com/hupe1980/dimgo/ratio"
	"github.com/hupe1980/dimgo/symbolic"
)

// Unit is a parsed unit expression together with its originating text, its
// dimension vector, and its scale factor. Units are immutable values; every
// algebraic operation returns a new Unit.
//
// The zero Unit is not valid. Use Parse, One, or a System to obtain one.
type Unit struct {
	expr  symbolic.Expression
	text  string
	dims  Dimensions
	scale float64
}

// One is the dimensionless unit.
var One = MustParse("1")

// Parse parses a unit expression such as "kg m^2 / s^2" and resolves every
// symbol against the reference table. It returns a *symbolic.ParseError for
// malformed text and an *UnknownSymbolError for an unrecognized symbol.
func Parse(text string, opts ...symbolic.Option) (Unit, error) {
	expr, err := symbolic.Parse(text, opts...)
	if err != nil {
		return Unit{}, err
	}
	u, err := fromExpression(expr)
	if err != nil {
		var unknown *UnknownSymbolError
		if errors.As(err, &unknown) {
			unknown.Text = text
		}
		return Unit{}, err
	}
	u.text = text
	return u, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string, opts ...symbolic.Option) Unit {
	u, err := Parse(text, opts...)
	if err != nil {
		panic(err)
	}
	return u
}

// FromExpression resolves an already-parsed expression into a Unit.
func FromExpression(expr symbolic.Expression) (Unit, error) {
	u, err := fromExpression(expr)
	if err != nil {
		return Unit{}, err
	}
	u.text = expr.String()
	return u, nil
}

// fromExpression computes the dimension vector and scale of expr by
// resolving each term through the reference table. Alias spellings are
// rewritten to their table symbols ("ohm" to "Ω", "day" to "d") so that the
// canonical string is identical for every spelling of the same unit.
func fromExpression(expr symbolic.Expression) (Unit, error) {
	dims := Dimensionless
	scale := 1.0
	terms := expr.Terms()
	canonical := make([]symbolic.Term, 0, len(terms))
	for _, term := range terms {
		named, err := resolveSymbol(term.Symbol)
		if err != nil {
			return Unit{}, err
		}
		dims = dims.Times(named.base.vector.Pow(term.Exponent))
		scale *= math.Pow(named.scale(), term.Exponent.Float())
		canonical = append(canonical, symbolic.NewTerm(named.symbol(), term.Exponent))
	}
	return Unit{expr: symbolic.FromTerms(canonical...), dims: dims, scale: scale}, nil
}

// Text returns the originating text form.
func (u Unit) Text() string {
	return u.text
}

// String returns the canonical product-of-powers form, which is identical
// for all algebraically equivalent spellings of the unit.
func (u Unit) String() string {
	return u.expr.String()
}

// Format renders the unit in the given style.
func (u Unit) Format(style symbolic.Style) string {
	return u.expr.Format(style)
}

// Expression returns the canonical expression.
func (u Unit) Expression() symbolic.Expression {
	return u.expr
}

// Dimensions returns the dimension vector.
func (u Unit) Dimensions() Dimensions {
	return u.dims
}

// Scale returns the scale factor relative to the reference units of the
// dimension vector.
func (u Unit) Scale() float64 {
	return u.scale
}

// IsDimensionless reports whether the unit has the empty dimension vector.
func (u Unit) IsDimensionless() bool {
	return u.dims.IsDimensionless()
}

// Equal reports whether two units have identical canonical expressions.
// Units that are merely convertible, such as "J" and "erg", are not equal.
func (u Unit) Equal(other Unit) bool {
	return u.expr.Equal(other.expr)
}

// Times returns the algebraic product of two units.
func (u Unit) Times(other Unit) Unit {
	expr := u.expr.Times(other.expr)
	return Unit{
		expr:  expr,
		text:  expr.String(),
		dims:  u.dims.Times(other.dims),
		scale: u.scale * other.scale,
	}
}

// Over returns the algebraic quotient of two units.
func (u Unit) Over(other Unit) Unit {
	expr := u.expr.Over(other.expr)
	return Unit{
		expr:  expr,
		text:  expr.String(),
		dims:  u.dims.Over(other.dims),
		scale: u.scale / other.scale,
	}
}

// Pow raises the unit to a rational power.
func (u Unit) Pow(p ratio.Ratio) Unit {
	expr := u.expr.Pow(p)
	return Unit{
		expr:  expr,
		text:  expr.String(),
		dims:  u.dims.Pow(p),
		scale: math.Pow(u.scale, p.Float()),
	}
}

// MarshalText encodes the unit as its canonical string.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText parses the unit from text.
func (u *Unit) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

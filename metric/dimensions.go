package metric

import (
	"github.com/hupe1980/dimgo/ratio"
	"github.com/hupe1980/dimgo/symbolic"
)

// Base dimension symbols. The temperature symbol is H rather than the SI
// theta because theta is not an ASCII character.
const (
	Length            = "L"
	Mass              = "M"
	Time              = "T"
	Current           = "I"
	Temperature       = "H"
	Amount            = "N"
	LuminousIntensity = "J"
	PlaneAngle        = "A"
	SolidAngle        = "O"
)

// BaseDimensions lists the base dimension symbols in conventional order.
var BaseDimensions = []string{
	Length,
	Mass,
	Time,
	Current,
	Temperature,
	Amount,
	LuminousIntensity,
	PlaneAngle,
	SolidAngle,
}

// Dimensions is the dimension vector of a unit expression, held as a
// canonical product of powers over the base dimension symbols. Two vectors
// are equal exactly when their rational exponents match component-wise.
//
// The zero value is the dimensionless vector.
type Dimensions struct {
	expr symbolic.Expression
}

// Dimensionless is the empty dimension vector.
var Dimensionless = Dimensions{}

// ParseDimensions parses a dimension expression such as "M L^2 T^-2" or
// "(M * L^2) / T^2". Every symbol must be one of the base dimension symbols.
func ParseDimensions(text string) (Dimensions, error) {
	expr, err := symbolic.Parse(text)
	if err != nil {
		return Dimensions{}, err
	}
	for _, term := range expr.Terms() {
		if !isBaseDimension(term.Symbol) {
			return Dimensions{}, &UnknownSymbolError{Symbol: term.Symbol, Text: text}
		}
	}
	return Dimensions{expr: expr}, nil
}

// MustParseDimensions is like ParseDimensions but panics on error. It is
// intended for static table entries.
func MustParseDimensions(text string) Dimensions {
	d, err := ParseDimensions(text)
	if err != nil {
		panic(err)
	}
	return d
}

func isBaseDimension(symbol string) bool {
	for _, d := range BaseDimensions {
		if symbol == d {
			return true
		}
	}
	return false
}

// Exponent returns the rational exponent of the given base dimension symbol.
func (d Dimensions) Exponent(symbol string) ratio.Ratio {
	return d.expr.Exponent(symbol)
}

// IsDimensionless reports whether every exponent is zero.
func (d Dimensions) IsDimensionless() bool {
	return d.expr.IsIdentity()
}

// Equal reports whether two dimension vectors match component-wise.
func (d Dimensions) Equal(other Dimensions) bool {
	return d.expr.Equal(other.expr)
}

// Times returns the component-wise sum of two dimension vectors.
func (d Dimensions) Times(other Dimensions) Dimensions {
	return Dimensions{expr: d.expr.Times(other.expr)}
}

// Over returns the component-wise difference of two dimension vectors.
func (d Dimensions) Over(other Dimensions) Dimensions {
	return Dimensions{expr: d.expr.Over(other.expr)}
}

// Pow scales every exponent by the rational factor p.
func (d Dimensions) Pow(p ratio.Ratio) Dimensions {
	return Dimensions{expr: d.expr.Pow(p)}
}

// Expression returns the underlying canonical expression.
func (d Dimensions) Expression() symbolic.Expression {
	return d.expr
}

// String renders the vector in the canonical product-of-powers form, or "1"
// for the dimensionless vector.
func (d Dimensions) String() string {
	return d.expr.String()
}

// Package ratio implements exact rational numbers with value semantics.
//
// Ratios back the exponents of unit expressions and the scale factors of the
// metric tables, where float arithmetic would break exact canonical equality
// (m^(1/3) raised to 3 must compare equal to m^1, not approximately equal).
//
// Every Ratio produced by this package is normalized: the fraction is fully
// reduced and the denominator is positive. Two such Ratios are equal exactly
// when their struct values are equal, so == works and Ratio is usable as a
// map key. The zero value behaves as 0 but is not normalized; compare with
// Equal, or construct through New, when a zero value may be in play.
package ratio

import (
	"fmt"
	"strconv"
	"strings"
)

// Ratio is an exact rational number.
//
// The zero value is 0/1.
type Ratio struct {
	num int64
	den int64
}

// Common values.
var (
	Zero = Ratio{0, 1}
	One  = Ratio{1, 1}
)

// New returns the normalized ratio num/den.
//
// New panics if den is zero; exponents and scale factors never have a zero
// denominator by construction, so this indicates a programming error.
func New(num, den int64) Ratio {
	if den == 0 {
		panic("ratio: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs(num), den); g > 1 {
		num /= g
		den /= g
	}
	if num == 0 {
		den = 1
	}
	return Ratio{num, den}
}

// FromInt returns the ratio n/1.
func FromInt(n int64) Ratio {
	return Ratio{n, 1}
}

// Parse converts a string to a Ratio.
//
// Accepted forms, each with an optional leading sign:
//
//   - an integer: "4", "-2"
//   - a fraction: "3/2", "-1/2"
//   - a decimal, optionally with a scientific exponent: "0.5", "2.5e-1"
//
// Decimal input converts exactly; "0.1" parses to 1/10, not to the nearest
// binary float.
func Parse(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ratio{}, fmt.Errorf("ratio: empty input")
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return Ratio{}, fmt.Errorf("ratio: invalid numerator in %q", s)
		}
		den, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil || den == 0 {
			return Ratio{}, fmt.Errorf("ratio: invalid denominator in %q", s)
		}
		return New(num, den), nil
	}
	if !strings.ContainsAny(s, ".eE") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Ratio{}, fmt.Errorf("ratio: invalid integer %q", s)
		}
		return FromInt(n), nil
	}
	return parseDecimal(s)
}

// MustParse is like Parse but panics on malformed input. It is intended for
// package-level constants.
func MustParse(s string) Ratio {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseDecimal(s string) (Ratio, error) {
	mant := s
	exp10 := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Ratio{}, fmt.Errorf("ratio: invalid exponent in %q", s)
		}
		exp10 = e
		mant = s[:i]
	}
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		frac := mant[i+1:]
		mant = mant[:i] + frac
		exp10 -= len(frac)
	}
	if mant == "" || mant == "+" || mant == "-" {
		return Ratio{}, fmt.Errorf("ratio: invalid decimal %q", s)
	}
	num, err := strconv.ParseInt(mant, 10, 64)
	if err != nil {
		return Ratio{}, fmt.Errorf("ratio: invalid decimal %q", s)
	}
	den := int64(1)
	for ; exp10 > 0; exp10-- {
		if num > maxInt64/10 || num < -maxInt64/10 {
			return Ratio{}, fmt.Errorf("ratio: %q overflows", s)
		}
		num *= 10
	}
	for ; exp10 < 0; exp10++ {
		if den > maxInt64/10 {
			return Ratio{}, fmt.Errorf("ratio: %q overflows", s)
		}
		den *= 10
	}
	return New(num, den), nil
}

const maxInt64 = int64(1<<63 - 1)

// Num returns the normalized numerator.
func (r Ratio) Num() int64 {
	if r.den == 0 {
		return 0 // zero value
	}
	return r.num
}

// Den returns the normalized denominator, always positive.
func (r Ratio) Den() int64 {
	if r.den == 0 {
		return 1 // zero value
	}
	return r.den
}

// IsZero reports whether r equals 0.
func (r Ratio) IsZero() bool { return r.Num() == 0 }

// IsInt reports whether r is a whole number.
func (r Ratio) IsInt() bool { return r.Den() == 1 }

// Sign returns -1, 0, or +1 according to the sign of r.
func (r Ratio) Sign() int {
	switch {
	case r.Num() < 0:
		return -1
	case r.Num() > 0:
		return 1
	default:
		return 0
	}
}

// Neg returns -r.
func (r Ratio) Neg() Ratio {
	return Ratio{-r.Num(), r.Den()}
}

// Add returns r + s.
func (r Ratio) Add(s Ratio) Ratio {
	return New(r.Num()*s.Den()+s.Num()*r.Den(), r.Den()*s.Den())
}

// Sub returns r - s.
func (r Ratio) Sub(s Ratio) Ratio {
	return New(r.Num()*s.Den()-s.Num()*r.Den(), r.Den()*s.Den())
}

// Mul returns r * s.
//
// Cross factors are reduced before multiplying to delay int64 overflow.
func (r Ratio) Mul(s Ratio) Ratio {
	a, b := r.Num(), r.Den()
	c, d := s.Num(), s.Den()
	if g := gcd(abs(a), d); g > 1 {
		a /= g
		d /= g
	}
	if g := gcd(abs(c), b); g > 1 {
		c /= g
		b /= g
	}
	return New(a*c, b*d)
}

// Div returns r / s. It panics if s is zero.
func (r Ratio) Div(s Ratio) Ratio {
	if s.IsZero() {
		panic("ratio: division by zero")
	}
	return r.Mul(Ratio{s.Den(), s.Num()})
}

// Equal reports whether r and s denote the same rational number.
func (r Ratio) Equal(s Ratio) bool {
	return r.Num() == s.Num() && r.Den() == s.Den()
}

// Cmp compares r and s, returning -1 if r < s, 0 if r == s, and +1 if r > s.
func (r Ratio) Cmp(s Ratio) int {
	lhs := r.Num() * s.Den()
	rhs := s.Num() * r.Den()
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Float returns the nearest float64 to r.
func (r Ratio) Float() float64 {
	return float64(r.Num()) / float64(r.Den())
}

// String renders r in the form used by unit expressions: whole numbers render
// without a denominator ("2", "-1"), everything else as "num/den" ("3/2").
func (r Ratio) String() string {
	if r.IsInt() {
		return strconv.FormatInt(r.Num(), 10)
	}
	return strconv.FormatInt(r.Num(), 10) + "/" + strconv.FormatInt(r.Den(), 10)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

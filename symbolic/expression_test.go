package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dimgo/ratio"
)

func TestExpressionAlgebra(t *testing.T) {
	speed := MustParse("m / s")
	duration := MustParse("s")

	t.Run("times", func(t *testing.T) {
		assert.Equal(t, "m", speed.Times(duration).String())
	})

	t.Run("over", func(t *testing.T) {
		assert.Equal(t, "m s^-2", speed.Over(duration).String())
	})

	t.Run("pow", func(t *testing.T) {
		assert.Equal(t, "m^2 s^-2", speed.Pow(ratio.FromInt(2)).String())
		assert.Equal(t, "m^1/2 s^-1/2", speed.Pow(ratio.New(1, 2)).String())
		assert.True(t, speed.Pow(ratio.Zero).IsIdentity())
	})

	t.Run("inverse", func(t *testing.T) {
		assert.Equal(t, "m^-1 s", speed.Inverse().String())
		assert.True(t, speed.Times(speed.Inverse()).IsIdentity())
	})

	t.Run("operands unchanged", func(t *testing.T) {
		// Expressions are immutable values.
		assert.Equal(t, "m s^-1", speed.String())
		assert.Equal(t, "s", duration.String())
	})
}

func TestExpressionIdentity(t *testing.T) {
	one := Identity()
	assert.True(t, one.IsIdentity())
	assert.Equal(t, "1", one.String())
	assert.Equal(t, 0, one.Len())
	assert.Nil(t, one.Terms())

	m := MustParse("m")
	assert.True(t, one.Times(m).Equal(m))
	assert.True(t, m.Times(one).Equal(m))
	assert.True(t, m.Over(m).Equal(one))
}

func TestExpressionPowRoundTrip(t *testing.T) {
	m := MustParse("m")
	cubeRoot := m.Pow(ratio.New(1, 3))
	back := cubeRoot.Pow(ratio.FromInt(3))
	// Rational exponents keep round trips exact.
	assert.True(t, back.Equal(m))
	assert.Equal(t, "m", back.String())
}

func TestFromTermsCanonicalizes(t *testing.T) {
	expr := FromTerms(
		NewTermInt("s", -1),
		NewTermInt("m", 1),
		NewTerm("s", ratio.FromInt(1)),
		NewTermInt("kg", 0),
	)
	// s^-1 and s^1 cancel; kg^0 drops; result is just m.
	assert.Equal(t, "m", expr.String())
}

func TestExpressionExponent(t *testing.T) {
	expr := MustParse("kg m^2 s^-2")
	assert.True(t, expr.Exponent("m").Equal(ratio.FromInt(2)))
	assert.True(t, expr.Exponent("s").Equal(ratio.FromInt(-2)))
	assert.True(t, expr.Exponent("K").IsZero())
}

func TestExpressionFormat(t *testing.T) {
	tests := []struct {
		input string
		style Style
		want  string
	}{
		{input: "m / s", style: StylePlain, want: "m s^-1"},
		{input: "m / s", style: StyleTeX, want: `$\mathrm{m}$ $\mathrm{s}^{-1}$`},
		{input: "m^3/2", style: StyleTeX, want: `$\mathrm{m}^{3/2}$`},
		{input: "# / s", style: StyleTeX, want: `$#$ $\mathrm{s}^{-1}$`},
		{input: "1", style: StyleTeX, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			expr := MustParse(tt.input)
			assert.Equal(t, tt.want, expr.Format(tt.style))
		})
	}
}

func TestExpressionFormatSep(t *testing.T) {
	expr := MustParse("kg m / s^2")
	assert.Equal(t, "kg*m*s^-2", expr.FormatSep(StylePlain, "*"))
}

func TestTermString(t *testing.T) {
	assert.Equal(t, "m", NewTermInt("m", 1).String())
	assert.Equal(t, "s^-1", NewTermInt("s", -1).String())
	assert.Equal(t, "m^3/2", NewTerm("m", ratio.New(3, 2)).String())
}

func TestTermsReturnsCopy(t *testing.T) {
	expr := MustParse("m / s")
	terms := expr.Terms()
	require.Len(t, terms, 2)
	terms[0].Symbol = "corrupted"
	assert.Equal(t, "m s^-1", expr.String())
}

package physical_test

import (
	"testing"

	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
	"github.com/hupe1980/dimgo/ratio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_Add(t *testing.T) {
	km := physical.NewScalar(1, metric.MustParse("km"))
	m := physical.NewScalar(500, metric.MustParse("m"))

	sum, err := km.Add(m)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, sum.Value(), 1e-12)
	assert.Equal(t, "km", sum.Unit().String())

	// The reverse order keeps the left-hand unit.
	sum, err = m.Add(km)
	require.NoError(t, err)
	assert.InDelta(t, 1500, sum.Value(), 1e-9)
	assert.Equal(t, "m", sum.Unit().String())

	_, err = km.Add(physical.NewScalar(1, metric.MustParse("s")))
	var incompatible *metric.IncompatibleUnitsError
	require.ErrorAs(t, err, &incompatible)
}

func TestScalar_Sub(t *testing.T) {
	h := physical.NewScalar(7.2, metric.MustParse("h"))
	s := physical.NewScalar(1800, metric.MustParse("s"))

	diff, err := h.Sub(s)
	require.NoError(t, err)
	assert.InDelta(t, 6.7, diff.Value(), 1e-12)
	assert.Equal(t, "h", diff.Unit().String())
}

func TestScalar_MulDiv(t *testing.T) {
	v := physical.NewScalar(3, metric.MustParse("m / s"))
	dt := physical.NewScalar(4, metric.MustParse("s"))

	distance := v.Mul(dt)
	assert.Equal(t, 12.0, distance.Value())
	assert.Equal(t, "m", distance.Unit().String())

	rate := physical.NewScalar(12, metric.MustParse("m")).Div(dt)
	assert.Equal(t, 3.0, rate.Value())
	assert.Equal(t, "m s^-1", rate.Unit().String())
}

func TestScalar_Pow(t *testing.T) {
	area := physical.NewScalar(9, metric.MustParse("m^2"))
	side := area.Pow(ratio.New(1, 2))
	assert.InDelta(t, 3, side.Value(), 1e-12)
	assert.Equal(t, "m", side.Unit().String())
}

func TestScalar_WithUnit(t *testing.T) {
	e := physical.NewScalar(1, metric.MustParse("J"))

	erg, err := e.WithUnit(metric.MustParse("erg"))
	require.NoError(t, err)
	assert.InDelta(t, 1e7, erg.Value(), 1)
	assert.Equal(t, "erg", erg.Unit().String())

	_, err = e.WithUnit(metric.MustParse("m"))
	var incompatible *metric.IncompatibleUnitsError
	require.ErrorAs(t, err, &incompatible)
}

func TestScalar_WithUnitRoundTrip(t *testing.T) {
	v := physical.NewScalar(300000, metric.MustParse("m s^-1"))

	aud, err := v.WithUnit(metric.MustParse("au d^-1"))
	require.NoError(t, err)
	assert.InDelta(t, 0.1732645, aud.Value(), 1e-6)

	back, err := aud.WithUnit(metric.MustParse("m s^-1"))
	require.NoError(t, err)
	assert.True(t, back.Equal(v))
}

func TestScalar_Equal(t *testing.T) {
	m := physical.NewScalar(1000, metric.MustParse("m"))
	km := physical.NewScalar(1, metric.MustParse("km"))
	assert.True(t, m.Equal(km))
	assert.True(t, km.Equal(m))
	assert.False(t, m.Equal(physical.NewScalar(1.001, metric.MustParse("km"))))
	assert.False(t, m.Equal(physical.NewScalar(1000, metric.MustParse("s"))))

	a := physical.NewScalar(1, metric.One)
	b := physical.NewScalar(1+1e-12, metric.One)
	assert.True(t, a.Equal(b))
	assert.False(t, a.EqualWithin(b, 1e-15))
}

func TestScalar_ZeroUnit(t *testing.T) {
	var zero metric.Unit
	s := physical.NewScalar(2, zero)
	assert.Equal(t, "1", s.Unit().String())
	assert.Equal(t, "2 1", s.String())
}

func TestScalar_Measure(t *testing.T) {
	s := physical.NewScalar(2.5, metric.MustParse("eV"))
	m, err := s.Measure()
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5}, m.Values())
	assert.Equal(t, "eV", m.Unit().String())
}

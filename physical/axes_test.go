package physical_test

import (
	"testing"

	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeEnergyAxes(t *testing.T) physical.Axes {
	t.Helper()
	axes, err := physical.NewAxes(
		physical.Named("time", physical.NewCoordinates([]float64{0, 3600, 7200}, metric.MustParse("s"))),
		physical.Named("energy", physical.NewCoordinates([]float64{1, 10, 100}, metric.MustParse("MeV"))),
	)
	require.NoError(t, err)
	return axes
}

func TestAxes_Construction(t *testing.T) {
	axes := timeEnergyAxes(t)
	assert.Equal(t, 2, axes.Len())
	assert.Equal(t, []string{"time", "energy"}, axes.Names())
	assert.Equal(t, 0, axes.Index("time"))
	assert.Equal(t, -1, axes.Index("shell"))

	axis, ok := axes.Get("energy")
	require.True(t, ok)
	assert.Equal(t, 3, axis.Len())

	_, err := physical.NewAxes(
		physical.Named("time", physical.PointsRange(3)),
		physical.Named("time", physical.PointsRange(3)),
	)
	require.Error(t, err)
}

func TestAxes_Replace(t *testing.T) {
	axes := timeEnergyAxes(t)
	replaced, err := axes.Replace("time", physical.PointsRange(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "energy"}, replaced.Names())

	axis, ok := replaced.Get("time")
	require.True(t, ok)
	_, isPoints := axis.(physical.Points)
	assert.True(t, isPoints)

	// The source collection is untouched.
	axis, _ = axes.Get("time")
	_, isCoords := axis.(physical.Coordinates)
	assert.True(t, isCoords)

	_, err = axes.Replace("shell", physical.PointsRange(3))
	require.ErrorIs(t, err, physical.ErrUnknownAxis)
}

func TestAxes_WithoutExtract(t *testing.T) {
	axes := timeEnergyAxes(t)

	only := axes.Without("time")
	assert.Equal(t, []string{"energy"}, only.Names())
	assert.Equal(t, []string{"time", "energy"}, axes.Without("shell").Names())

	extracted, err := axes.Extract("energy", "time")
	require.NoError(t, err)
	assert.Equal(t, []string{"energy", "time"}, extracted.Names())

	_, err = axes.Extract("shell")
	require.ErrorIs(t, err, physical.ErrUnknownAxis)
}

func TestAxes_Permute(t *testing.T) {
	axes := timeEnergyAxes(t)

	swapped, err := axes.Permute(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"energy", "time"}, swapped.Names())

	_, err = axes.Permute(0, 0)
	require.Error(t, err)
	_, err = axes.Permute(0)
	require.ErrorIs(t, err, physical.ErrShapeMismatch)

	named, err := axes.PermuteNamed("energy", "time")
	require.NoError(t, err)
	assert.True(t, named.Equal(swapped))
}

func TestAxes_Equal(t *testing.T) {
	a := timeEnergyAxes(t)
	b := timeEnergyAxes(t)
	assert.True(t, a.Equal(b))

	c, err := a.Replace("time", physical.NewCoordinates([]float64{0, 3600, 7201}, metric.MustParse("s")))
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	// Same values in a different unit are a different axis.
	d, err := a.Replace("time", physical.NewCoordinates([]float64{0, 3600, 7200}, metric.MustParse("ms")))
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
}

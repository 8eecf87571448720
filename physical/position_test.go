package physical_test

import (
	"testing"

	"github.com/hupe1980/dimgo/measure"
	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeSeries is a 1x5 observable over a time axis stored in seconds.
func timeSeries(t *testing.T) physical.Array {
	t.Helper()
	axes, err := physical.NewAxes(
		physical.Named("time", physical.NewCoordinates([]float64{0, 8640, 17280, 25920, 34560}, metric.MustParse("s"))),
	)
	require.NoError(t, err)
	a, err := physical.NewArray([]float64{10, 20, 30, 40, 50}, []int{5}, metric.MustParse("K"), axes)
	require.NoError(t, err)
	return a
}

// A target given in hours lands on the stored second value exactly instead
// of interpolating.
func TestLocate_ExactMatchAfterConversion(t *testing.T) {
	a := timeSeries(t)

	position, err := a.Locate("time", []any{7.2, "h"})
	require.NoError(t, err)
	require.True(t, position.IsExact())
	indices, ok := position.Indices()
	require.True(t, ok)
	assert.Equal(t, []int{3}, indices)

	selected, err := a.Extract(position)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, selected.Shape())
	assert.Equal(t, []float64{40}, selected.Values())
}

func TestLocate_Interpolation(t *testing.T) {
	a := timeSeries(t)

	// 12960 s sits halfway between 8640 and 17280.
	position, err := a.Locate("time", 12960.0)
	require.NoError(t, err)
	require.False(t, position.IsExact())
	lower, upper, weight := position.Bracket(0)
	assert.Equal(t, 1, lower)
	assert.Equal(t, 2, upper)
	assert.InDelta(t, 0.5, weight, 1e-12)

	selected, err := a.Extract(position)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, selected.Shape())
	assert.InDelta(t, 25, selected.Values()[0], 1e-9)

	// The blended value always lies between the bracketing values.
	for _, target := range []float64{9000, 12000, 16000, 17000} {
		position, err := a.Locate("time", target)
		require.NoError(t, err)
		selected, err := a.Extract(position)
		require.NoError(t, err)
		v := selected.Values()[0]
		assert.GreaterOrEqual(t, v, 20.0)
		assert.LessOrEqual(t, v, 30.0)
	}
}

func TestLocate_NearestTies(t *testing.T) {
	a := timeSeries(t)

	position, err := a.Locate("time", 12960.0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, position.Nearest())

	position, err = a.Locate("time", 13000.0)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, position.Nearest())

	position, err = a.Locate("time", 9000.0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, position.Nearest())
}

func TestLocate_OutOfRange(t *testing.T) {
	a := timeSeries(t)

	_, err := a.Locate("time", 40000.0)
	var oor *physical.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "time", oor.Axis)
	assert.Equal(t, 40000.0, oor.Value)
	assert.Equal(t, 0.0, oor.Min)
	assert.Equal(t, 34560.0, oor.Max)

	_, err = a.Locate("time", -1.0)
	require.ErrorAs(t, err, &oor)
}

func TestLocate_UnitHandling(t *testing.T) {
	a := timeSeries(t)

	// A unitless target reads in the axis unit.
	position, err := a.Locate("time", 8640)
	require.NoError(t, err)
	indices, ok := position.Indices()
	require.True(t, ok)
	assert.Equal(t, []int{1}, indices)

	// Incompatible target units fail.
	_, err = a.Locate("time", []any{1.0, "kg"})
	var incompatible *metric.IncompatibleUnitsError
	require.ErrorAs(t, err, &incompatible)

	// Unknown axis names fail.
	_, err = a.Locate("depth", 1.0)
	require.ErrorIs(t, err, physical.ErrUnknownAxis)

	// Measurements and measurable quantities work directly.
	m, err := measure.Parse([]any{[]float64{0.1, 0.2}, "d"})
	require.NoError(t, err)
	position, err = a.Locate("time", m)
	require.NoError(t, err)
	indices, ok = position.Indices()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, indices)

	position, err = a.Locate("time", physical.NewScalar(7.2, metric.MustParse("h")))
	require.NoError(t, err)
	indices, ok = position.Indices()
	require.True(t, ok)
	assert.Equal(t, []int{3}, indices)
}

func TestLocate_DescendingAxis(t *testing.T) {
	axes, err := physical.NewAxes(
		physical.Named("height", physical.NewCoordinates([]float64{100, 50, 10}, metric.MustParse("km"))),
	)
	require.NoError(t, err)
	a, err := physical.NewArray([]float64{1, 2, 3}, []int{3}, metric.One, axes)
	require.NoError(t, err)

	position, err := a.Locate("height", 50)
	require.NoError(t, err)
	indices, ok := position.Indices()
	require.True(t, ok)
	assert.Equal(t, []int{1}, indices)

	position, err = a.Locate("height", 30)
	require.NoError(t, err)
	lower, upper, weight := position.Bracket(0)
	assert.Equal(t, 1, lower)
	assert.Equal(t, 2, upper)
	assert.InDelta(t, 0.5, weight, 1e-12)

	_, err = a.Locate("height", 101)
	var oor *physical.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 10.0, oor.Min)
	assert.Equal(t, 100.0, oor.Max)
}

func TestLocate_CategoricalAxis(t *testing.T) {
	axes, err := physical.NewAxes(
		physical.Named("species", physical.NewSymbols("H+", "He+2", "e-")),
	)
	require.NoError(t, err)
	a, err := physical.NewArray([]float64{1, 4, 0.0005}, []int{3}, metric.MustParse("nuc"), axes)
	require.NoError(t, err)

	position, err := a.Locate("species", "He+2")
	require.NoError(t, err)
	indices, ok := position.Indices()
	require.True(t, ok)
	assert.Equal(t, []int{1}, indices)

	_, err = a.Locate("species", "O+6")
	var oor *physical.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, "species", oor.Axis)
	assert.Equal(t, "O+6", oor.Symbol)

	_, err = a.Locate("species", 2)
	require.ErrorIs(t, err, physical.ErrInvalidTarget)
}

func TestLocate_PointsAxis(t *testing.T) {
	axes, err := physical.NewAxes(
		physical.Named("shell", physical.NewPoints(10, 20, 30)),
	)
	require.NoError(t, err)
	a, err := physical.NewArray([]float64{1, 2, 3}, []int{3}, metric.One, axes)
	require.NoError(t, err)

	position, err := a.Locate("shell", []int{30, 10})
	require.NoError(t, err)
	indices, ok := position.Indices()
	require.True(t, ok)
	assert.Equal(t, []int{2, 0}, indices)

	_, err = a.Locate("shell", 15)
	var oor *physical.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 15.0, oor.Value)
}

func TestSelect_ComposesAxes(t *testing.T) {
	axes, err := physical.NewAxes(
		physical.Named("time", physical.NewCoordinates([]float64{0, 3600}, metric.MustParse("s"))),
		physical.Named("energy", physical.NewCoordinates([]float64{1, 10, 100}, metric.MustParse("MeV"))),
	)
	require.NoError(t, err)
	a, err := physical.NewArray(
		[]float64{
			1, 2, 3,
			4, 5, 6,
		},
		[]int{2, 3},
		metric.MustParse("# / cm^2 s sr MeV"),
		axes,
	)
	require.NoError(t, err)

	selected, err := a.Select(map[string]any{
		"time":   []any{0.5, "h"},
		"energy": []any{10.0, "MeV"},
	})
	require.NoError(t, err)

	// Rank is preserved; each selected axis keeps one slot.
	assert.Equal(t, []int{1, 1}, selected.Shape())
	// Halfway between rows [1 2 3] and [4 5 6] at energy column 1.
	assert.InDelta(t, 3.5, selected.Values()[0], 1e-9)

	axis, ok := selected.Axes().Get("time")
	require.True(t, ok)
	coords, isCoords := axis.(physical.Coordinates)
	require.True(t, isCoords)
	assert.Equal(t, []float64{1800}, coords.Values())
	assert.Equal(t, "s", coords.Unit().String())

	_, err = a.Select(map[string]any{"depth": 1.0})
	require.ErrorIs(t, err, physical.ErrUnknownAxis)
}

func TestSelect_MultipleTargets(t *testing.T) {
	a := timeSeries(t)

	selected, err := a.Select(map[string]any{"time": []float64{0, 25920}})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, selected.Shape())
	assert.Equal(t, []float64{10, 40}, selected.Values())

	axis, ok := selected.Axes().Get("time")
	require.True(t, ok)
	assert.Equal(t, 2, axis.Len())
}

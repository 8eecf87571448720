package dataset_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dimgo/codec"
	"github.com/hupe1980/dimgo/dataset"
	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
	"github.com/hupe1980/dimgo/testutil"
)

func requireDatasetsEqual(t *testing.T, want, got *dataset.Dataset) {
	t.Helper()
	require.Equal(t, want.Names(), got.Names())
	for _, name := range want.Names() {
		wantArr, _ := want.Get(name)
		gotArr, ok := got.Get(name)
		require.True(t, ok, "member %q", name)

		assert.Equal(t, wantArr.Shape(), gotArr.Shape(), "member %q", name)
		assert.Equal(t, wantArr.Values(), gotArr.Values(), "member %q", name)
		assert.Equal(t, wantArr.Unit().String(), gotArr.Unit().String(), "member %q", name)
		assert.True(t, wantArr.Axes().Equal(gotArr.Axes()), "member %q axes", name)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ds := observerDataset(t)

	for _, compression := range []dataset.Compression{
		dataset.CompressionNone,
		dataset.CompressionLZ4,
		dataset.CompressionZSTD,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ds.Snapshot(&buf, dataset.WithCompression(compression)))

			got, err := dataset.Load(&buf)
			require.NoError(t, err)
			requireDatasetsEqual(t, ds, got)
		})
	}
}

func TestSnapshot_MultiBlock(t *testing.T) {
	values := testutil.NewRNG(7).Values(4096)
	axes := physical.MustAxes(
		physical.Named("time", physical.NewCoordinates(
			testutil.Grid(8, 0, 3600), metric.MustParse("s"))),
		physical.Named("energy", physical.NewCoordinates(
			testutil.LogGrid(512, 0.1, 100), metric.MustParse("MeV"))),
	)
	arr, err := physical.NewArray(values, []int{8, 512},
		metric.MustParse("cm^-2 s^-1 sr^-1 MeV^-1"), axes)
	require.NoError(t, err)

	ds := dataset.New()
	require.NoError(t, ds.Put("flux", arr))

	// 1KB blocks force the 32KB payload across many frames.
	var buf bytes.Buffer
	require.NoError(t, ds.Snapshot(&buf,
		dataset.WithCompression(dataset.CompressionLZ4),
		dataset.WithBlockSize(1024),
	))

	got, err := dataset.Load(&buf)
	require.NoError(t, err)
	requireDatasetsEqual(t, ds, got)
}

func TestSnapshot_CodecOption(t *testing.T) {
	ds := observerDataset(t)

	var buf bytes.Buffer
	require.NoError(t, ds.Snapshot(&buf, dataset.WithCodec(codec.JSON{})))

	got, err := dataset.Load(&buf)
	require.NoError(t, err)
	requireDatasetsEqual(t, ds, got)
}

func TestSnapshot_EmptyDataset(t *testing.T) {
	ds := dataset.New()

	var buf bytes.Buffer
	require.NoError(t, ds.Snapshot(&buf))

	got, err := dataset.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestSnapshot_NonFiniteValues(t *testing.T) {
	arr, err := physical.NewArray(
		[]float64{math.Inf(1), math.Inf(-1), math.NaN(), 0},
		[]int{4},
		metric.One,
		physical.Axes{},
	)
	require.NoError(t, err)

	ds := dataset.New()
	require.NoError(t, ds.Put("edge", arr))

	var buf bytes.Buffer
	require.NoError(t, ds.Snapshot(&buf))

	got, err := dataset.Load(&buf)
	require.NoError(t, err)

	gotArr, _ := got.Get("edge")
	wantValues := arr.Values()
	gotValues := gotArr.Values()
	require.Len(t, gotValues, len(wantValues))
	for i := range wantValues {
		assert.Equal(t, math.Float64bits(wantValues[i]), math.Float64bits(gotValues[i]), "value %d", i)
	}
}

func TestLoad_BadMagic(t *testing.T) {
	_, err := dataset.Load(bytes.NewReader([]byte("NOPE....")))
	assert.ErrorIs(t, err, dataset.ErrBadSnapshot)
}

func TestLoad_TruncatedHeader(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("DGS1")
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], 100)
	buf.Write(lenBuf[:])
	buf.WriteString("{}")

	_, err := dataset.Load(&buf)
	assert.ErrorIs(t, err, dataset.ErrBadSnapshot)
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	header := codec.MustMarshal(codec.Default, map[string]any{
		"version":     99,
		"codec":       "go-json",
		"compression": "none",
		"members":     []any{},
	})

	var buf bytes.Buffer
	buf.WriteString("DGS1")
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(header)))
	buf.Write(lenBuf[:])
	buf.Write(header)

	_, err := dataset.Load(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported snapshot version")
}

func TestLoad_UnknownCodec(t *testing.T) {
	header := codec.MustMarshal(codec.Default, map[string]any{
		"version":     1,
		"codec":       "msgpack",
		"compression": "none",
		"members":     []any{},
	})

	var buf bytes.Buffer
	buf.WriteString("DGS1")
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(header)))
	buf.Write(lenBuf[:])
	buf.Write(header)

	_, err := dataset.Load(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown codec")
}

func TestLoad_CorruptedBlock(t *testing.T) {
	ds := observerDataset(t)

	var buf bytes.Buffer
	require.NoError(t, ds.Snapshot(&buf, dataset.WithCompression(dataset.CompressionNone)))

	// Flip a byte in the last block payload
	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF

	_, err := dataset.Load(bytes.NewReader(data))
	assert.ErrorIs(t, err, dataset.ErrChecksum)
}

func TestLoad_PayloadSizeMismatch(t *testing.T) {
	header := codec.MustMarshal(codec.Default, map[string]any{
		"version":     1,
		"codec":       "go-json",
		"compression": "none",
		"members": []any{map[string]any{
			"name":  "density",
			"unit":  "1",
			"shape": []int{2},
			"axes":  []any{},
		}},
	})

	var buf bytes.Buffer
	buf.WriteString("DGS1")
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(header)))
	buf.Write(lenBuf[:])
	buf.Write(header)
	// No payload blocks at all

	_, err := dataset.Load(&buf)
	assert.ErrorIs(t, err, dataset.ErrBadSnapshot)
}

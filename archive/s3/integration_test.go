package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dimgo/archive"
	"github.com/hupe1980/dimgo/dataset"
	"github.com/hupe1980/dimgo/internal/cache"
	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
	"github.com/hupe1980/dimgo/testutil"
)

// integrationStore connects to the bucket named by S3_BUCKET, skipping the
// test when the variable is unset. Each run works under its own prefix so
// leftovers from aborted runs never collide.
func integrationStore(t *testing.T) *Store {
	t.Helper()

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	require.NoError(t, err)

	prefix := fmt.Sprintf("dimgo-it-%d", time.Now().UnixNano())
	return NewStore(s3.NewFromConfig(cfg), bucket, prefix)
}

func TestIntegration_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := integrationStore(t)

	axes, err := physical.NewAxes(
		physical.Named("energy", physical.NewCoordinates(
			testutil.LogGrid(16, 0.1, 100), metric.MustParse("MeV"))),
	)
	require.NoError(t, err)
	flux, err := physical.NewArray(
		testutil.NewRNG(7).Values(16), []int{16},
		metric.MustParse("# / cm^2 s sr MeV"), axes,
	)
	require.NoError(t, err)

	ds := dataset.New()
	require.NoError(t, ds.Put("flux", flux))

	name := "epoch-1.dgs"
	require.NoError(t, ds.Save(ctx, store, name, dataset.WithCompression(dataset.CompressionLZ4)))
	defer func() { _ = store.Delete(ctx, name) }()

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, name)

	got, err := dataset.Open(ctx, store, name)
	require.NoError(t, err)
	assert.Equal(t, []string{"flux"}, got.Names())
}

func TestIntegration_BlobReads(t *testing.T) {
	ctx := context.Background()
	store := integrationStore(t)

	name := "blocks.bin"
	payload := testutil.NewRNG(time.Now().UnixNano()).Bytes(256 << 10)

	w, err := store.Create(ctx, name)
	require.NoError(t, err)
	n, err := w.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.NoError(t, w.Close())
	defer func() { _ = store.Delete(ctx, name) }()

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer blob.Close()
	require.Equal(t, int64(len(payload)), blob.Size())

	buf := make([]byte, 512)
	_, err = blob.ReadAt(ctx, buf, 64<<10)
	require.NoError(t, err)
	assert.Equal(t, payload[64<<10:64<<10+512], buf)

	rc, err := blob.ReadRange(ctx, int64(len(payload)-128), 128)
	require.NoError(t, err)
	tail, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, payload[len(payload)-128:], tail)

	// Same bytes again through a block cache in front of the bucket.
	lru := cache.NewLRUBlockCache(1<<20, nil)
	defer lru.Close()
	cached := archive.NewCachingStore(store, lru, 32<<10)
	cachedBlob, err := cached.Open(ctx, name)
	require.NoError(t, err)
	defer cachedBlob.Close()

	_, err = cachedBlob.ReadAt(ctx, buf, 64<<10)
	require.NoError(t, err)
	assert.Equal(t, payload[64<<10:64<<10+512], buf)

	_, err = store.Open(ctx, "nonexistent")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

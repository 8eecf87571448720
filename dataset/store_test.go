package dataset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dimgo/archive"
	"github.com/hupe1980/dimgo/dataset"
)

func TestSaveOpen_MemoryStore(t *testing.T) {
	ctx := context.Background()
	store := archive.NewMemoryStore()
	ds := observerDataset(t)

	require.NoError(t, ds.Save(ctx, store, "epoch-1.dgs"))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"epoch-1.dgs"}, names)

	got, err := dataset.Open(ctx, store, "epoch-1.dgs")
	require.NoError(t, err)
	requireDatasetsEqual(t, ds, got)
}

func TestSaveOpen_LocalStore(t *testing.T) {
	ctx := context.Background()
	store := archive.NewLocalStore(t.TempDir())
	ds := observerDataset(t)

	require.NoError(t, ds.Save(ctx, store, "runs/2026/epoch-1.dgs",
		dataset.WithCompression(dataset.CompressionLZ4),
	))

	got, err := dataset.Open(ctx, store, "runs/2026/epoch-1.dgs")
	require.NoError(t, err)
	requireDatasetsEqual(t, ds, got)
}

func TestOpen_NotFound(t *testing.T) {
	ctx := context.Background()
	store := archive.NewMemoryStore()

	_, err := dataset.Open(ctx, store, "missing.dgs")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestOpenAll(t *testing.T) {
	ctx := context.Background()
	store := archive.NewMemoryStore()
	ds := observerDataset(t)

	names := []string{"epoch-1.dgs", "epoch-2.dgs", "epoch-3.dgs"}
	for _, name := range names {
		require.NoError(t, ds.Save(ctx, store, name))
	}

	all, err := dataset.OpenAll(ctx, store, names...)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, name := range names {
		requireDatasetsEqual(t, ds, all[name])
	}
}

func TestOpenAll_MissingSnapshot(t *testing.T) {
	ctx := context.Background()
	store := archive.NewMemoryStore()
	ds := observerDataset(t)

	require.NoError(t, ds.Save(ctx, store, "epoch-1.dgs"))

	_, err := dataset.OpenAll(ctx, store, "epoch-1.dgs", "epoch-2.dgs")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

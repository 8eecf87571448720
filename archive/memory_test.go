package archive

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Put and Open
	data := []byte("snapshot payload")
	require.NoError(t, store.Put(ctx, "a.dgs", data))

	blob, err := store.Open(ctx, "a.dgs")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, data, buf[:n])
	require.NoError(t, blob.Close())

	// Streaming create
	w, err := store.Create(ctx, "b.dgs")
	require.NoError(t, err)
	_, err = w.Write([]byte("part1 "))
	require.NoError(t, err)
	_, err = w.Write([]byte("part2"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob2, err := store.Open(ctx, "b.dgs")
	require.NoError(t, err)
	assert.Equal(t, int64(11), blob2.Size())
	require.NoError(t, blob2.Close())

	// List with prefix
	require.NoError(t, store.Put(ctx, "runs/c.dgs", []byte("x")))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.dgs", "b.dgs", "runs/c.dgs"}, names)

	names, err = store.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/c.dgs"}, names)

	// Delete
	require.NoError(t, store.Delete(ctx, "a.dgs"))
	_, err = store.Open(ctx, "a.dgs")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CreateNotVisibleUntilClose(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w, err := store.Create(ctx, "pending.dgs")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	_, err = store.Open(ctx, "pending.dgs")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "pending.dgs")
	require.NoError(t, err)
	assert.Equal(t, int64(7), blob.Size())
	require.NoError(t, blob.Close())

	// Double close
	assert.ErrorIs(t, w.Close(), ErrClosed)
}

func TestMemoryStore_OpenCopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("immutable")
	require.NoError(t, store.Put(ctx, "a.dgs", data))

	// Mutating the caller's slice must not affect the stored object.
	data[0] = 'X'

	blob, err := store.Open(ctx, "a.dgs")
	require.NoError(t, err)
	buf := make([]byte, 9)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "immutable", string(buf))
}

func TestMemoryStore_ReadRange(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.dgs", []byte("0123456789")))
	blob, err := store.Open(ctx, "a.dgs")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 2, 4)
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "2345", string(content))
	r.Close()

	// Truncated at object end
	r, err = blob.ReadRange(ctx, 8, 10)
	require.NoError(t, err)
	content, _ = io.ReadAll(r)
	assert.Equal(t, "89", string(content))
	r.Close()

	// Offset past end
	_, err = blob.ReadRange(ctx, 20, 1)
	assert.ErrorIs(t, err, io.EOF)
}

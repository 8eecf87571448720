package archive

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dimgo/internal/fs"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Create an object
	name := "epoch-001.dgs"
	data := []byte("hello world, this is a test snapshot object")

	w, err := store.Create(ctx, name)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	err = w.Close()
	require.NoError(t, err)

	// Verify file exists on disk
	expectedPath := filepath.Join(tmpDir, name)
	_, err = os.Stat(expectedPath)
	require.NoError(t, err)

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err = blob.ReadAt(ctx, buf, 6) // "world"
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	// 3. ReadRange
	// Read "this" (offset 13, length 4)
	rangeReader, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	defer rangeReader.Close()

	rangeContent, err := io.ReadAll(rangeReader)
	require.NoError(t, err)
	require.Equal(t, "this", string(rangeContent))

	// 4. List
	name2 := "epoch-002.dgs"
	w2, err := store.Create(ctx, name2)
	require.NoError(t, err)
	require.NoError(t, w2.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{name, name2}, names)

	// 5. Delete
	err = store.Delete(ctx, name)
	require.NoError(t, err)

	namesAfter, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{name2}, namesAfter)

	_, err = store.Open(ctx, name)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_ReadRange_Boundaries(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	name := "boundary.bin"
	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, name, data))

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer blob.Close()

	// Case 1: Read full range
	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	r.Close()
	require.True(t, bytes.Equal(data, content))

	// Case 2: Read past end
	r, err = blob.ReadRange(ctx, 8, 5) // Request 5 bytes starting at 8 (only 2 available: 8, 9)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	// Case 3: Offset past EOF
	r, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)
	if r != nil {
		r.Close()
	}
}

func TestLocalStore_NestedNames(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "runs/2026/epoch-001.dgs", []byte("a")))
	require.NoError(t, store.Put(ctx, "runs/2026/epoch-002.dgs", []byte("b")))
	require.NoError(t, store.Put(ctx, "runs/2025/epoch-001.dgs", []byte("c")))

	names, err := store.List(ctx, "runs/2026/")
	require.NoError(t, err)
	require.Equal(t, []string{"runs/2026/epoch-001.dgs", "runs/2026/epoch-002.dgs"}, names)
}

func TestLocalStore_WriterClosedTwice(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "x.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.ErrorIs(t, w.Close(), ErrClosed)
	_, err = w.Write([]byte("more"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestLocalStore_TempFilesNotListed(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// An open writer must not show up in listings.
	w, err := store.Create(ctx, "pending.dgs")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, names)

	require.NoError(t, w.Close())

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"pending.dgs"}, names)
}

func TestLocalStore_WriteFaultLeavesNothingBehind(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule(tempSuffix, fs.Fault{FailAfterBytes: 8})
	store := NewLocalStoreFS(ffs, tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "truncated.dgs")
	require.NoError(t, err)

	_, err = w.Write([]byte("fits"))
	require.NoError(t, err)
	_, err = w.Write([]byte("does not fit anymore"))
	require.ErrorIs(t, err, fs.ErrInjected)

	Discard(w)

	// Neither the object nor its temp file survives.
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, names)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLocalStore_SyncFaultAbortsPublish(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule(tempSuffix, fs.Fault{FailAfterBytes: -1, FailOnSync: true})
	store := NewLocalStoreFS(ffs, tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "unsynced.dgs")
	require.NoError(t, err)
	_, err = w.Write([]byte("snapshot bytes"))
	require.NoError(t, err)

	// Close syncs before renaming; the injected sync failure must keep
	// the object unpublished.
	require.ErrorIs(t, w.Close(), fs.ErrInjected)

	_, err = store.Open(ctx, "unsynced.dgs")
	require.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

package archive

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when an object does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrClosed is returned when writing to or closing an already closed blob.
var ErrClosed = errors.New("archive: already closed")

// Store is an abstraction for accessing immutable snapshot objects.
type Store interface {
	// Open opens an object for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a new object for streaming writes.
	// Content becomes visible on Close.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes an object atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes an object.
	Delete(ctx context.Context, name string) error
	// List returns all object names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored object.
type Blob interface {
	// ReadAt reads up to len(p) bytes starting at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader over [off, off+length), truncated at
	// the object end.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the object in bytes.
	Size() int64
	Close() error
}

// WritableBlob is a write handle to a new object.
type WritableBlob interface {
	io.Writer
	// Close finalizes the object and makes it visible.
	io.Closer
	// Sync flushes buffered data where the backend supports it.
	Sync() error
}

// Discard abandons an in-progress write. Blobs that support Abort discard
// without publishing; for the rest the blob is closed.
func Discard(w WritableBlob) {
	if aborter, ok := w.(interface{ Abort() error }); ok {
		_ = aborter.Abort()
		return
	}
	_ = w.Close()
}

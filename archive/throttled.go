package archive

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/hupe1980/dimgo/internal/resource"
)

// ThrottledStore wraps a Store and charges all object IO against a
// resource controller. Reads and writes pass through the controller's
// rate limiter; writes additionally hold a worker slot for the life of
// the handle, so bulk snapshot writes default to one at a time.
type ThrottledStore struct {
	inner Store
	rc    *resource.Controller
}

// NewThrottledStore creates a new ThrottledStore.
// A nil controller leaves the inner store unthrottled.
func NewThrottledStore(inner Store, rc *resource.Controller) *ThrottledStore {
	return &ThrottledStore{inner: inner, rc: rc}
}

func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledBlob{inner: b, rc: s.rc}, nil
}

// Create claims a worker slot before opening the write handle. The slot
// is held until Close or Abort.
func (s *ThrottledStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := s.rc.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		s.rc.ReleaseWorker()
		return nil, err
	}
	return &throttledWritable{
		inner:   w,
		limited: resource.NewRateLimitedWriter(ctx, w, s.rc),
		rc:      s.rc,
	}, nil
}

func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer s.rc.ReleaseWorker()

	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// throttledWritable releases its worker slot exactly once, whether the
// write ends in Close or Abort.
type throttledWritable struct {
	inner    WritableBlob
	limited  *resource.RateLimitedWriter
	rc       *resource.Controller
	released atomic.Bool
}

func (w *throttledWritable) Write(p []byte) (int, error) {
	return w.limited.Write(p)
}

func (w *throttledWritable) Sync() error {
	return w.inner.Sync()
}

func (w *throttledWritable) Close() error {
	defer w.release()
	return w.inner.Close()
}

// Abort discards the write without publishing. Safe to call after Close.
func (w *throttledWritable) Abort() error {
	defer w.release()
	if aborter, ok := w.inner.(interface{ Abort() error }); ok {
		return aborter.Abort()
	}
	return w.inner.Close()
}

func (w *throttledWritable) release() {
	if w.released.CompareAndSwap(false, true) {
		w.rc.ReleaseWorker()
	}
}

// throttledBlob rate-limits reads. Like the rate-limited reader, tokens
// are charged for the requested length, not the bytes returned.
type throttledBlob struct {
	inner Blob
	rc    *resource.Controller
}

func (b *throttledBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.rc.AcquireIO(ctx, len(p)); err != nil {
		return 0, err
	}
	return b.inner.ReadAt(ctx, p, off)
}

func (b *throttledBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	inner, err := b.inner.ReadRange(ctx, off, length)
	if err != nil {
		return nil, err
	}
	return &throttledRangeReader{
		Reader: resource.NewRateLimitedReader(ctx, inner, b.rc),
		inner:  inner,
	}, nil
}

func (b *throttledBlob) Size() int64 {
	return b.inner.Size()
}

func (b *throttledBlob) Close() error {
	return b.inner.Close()
}

// throttledRangeReader keeps Close reaching the backend reader.
type throttledRangeReader struct {
	io.Reader
	inner io.ReadCloser
}

func (r *throttledRangeReader) Close() error {
	return r.inner.Close()
}

package archive

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/dimgo/internal/cache"
)

// Runs of missing blocks fetched from the backend concurrently.
const fetchParallelism = 8

// CachingStore wraps a Store with a shared block cache. Reads are assembled
// block by block out of the cache and whole runs of missing blocks are
// fetched in single ranged backend requests. Writes pass through untouched
// since snapshots are immutable, but overwriting or deleting an object
// drops its cached blocks.
type CachingStore struct {
	inner     Store
	blocks    cache.BlockCache
	blockSize int64
}

// NewCachingStore wraps inner with block-level read caching. A non-positive
// blockSize selects the 64KB default.
func NewCachingStore(inner Store, blocks cache.BlockCache, blockSize int64) *CachingStore {
	if blockSize <= 0 {
		blockSize = 64 << 10
	}
	return &CachingStore{inner: inner, blocks: blocks, blockSize: blockSize}
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	inner, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachedBlob{
		inner:     inner,
		blocks:    s.blocks,
		object:    name,
		blockSize: s.blockSize,
	}, nil
}

// Create passes through. Freshly written snapshots enter the cache on
// their first read.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	return s.inner.Create(ctx, name)
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.drop(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.drop(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// drop evicts every cached block of one object so overwrites cannot serve
// stale data.
func (s *CachingStore) drop(name string) {
	s.blocks.Invalidate(func(key cache.Key) bool {
		return key.Object == name
	})
}

// cachedBlob serves reads for a single object through the shared cache.
type cachedBlob struct {
	inner     Blob
	blocks    cache.BlockCache
	object    string
	blockSize int64
}

func (b *cachedBlob) Close() error { return b.inner.Close() }

func (b *cachedBlob) Size() int64 { return b.inner.Size() }

func (b *cachedBlob) key(index int64) cache.Key {
	return cache.Key{Object: b.object, Block: uint64(index)}
}

// ReadAt assembles the requested range block by block, pulling runs of
// missing blocks into the cache first so a cold sequential scan costs one
// ranged backend request instead of one per block.
func (b *cachedBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	first := off / b.blockSize
	last := (off + int64(len(p)) - 1) / b.blockSize

	if err := b.fetchRuns(ctx, b.missing(ctx, first, last)); err != nil {
		return 0, err
	}

	total := 0
	for index := first; index <= last; index++ {
		data, err := b.blockData(ctx, index)
		if err != nil {
			return total, err
		}
		total += copyBlock(p, off, data, index*b.blockSize)
	}
	return total, nil
}

// copyBlock copies the intersection of one block's data, placed at
// blockStart in the object, with the destination window [off, off+len(p))
// and reports the bytes copied. A short final block simply intersects less.
func copyBlock(p []byte, off int64, data []byte, blockStart int64) int {
	lo := max(blockStart, off)
	hi := min(blockStart+int64(len(data)), off+int64(len(p)))
	if hi <= lo {
		return 0
	}
	return copy(p[lo-off:hi-off], data[lo-blockStart:hi-blockStart])
}

// run is a contiguous range of block indices absent from the cache.
type run struct {
	first int64
	count int64
}

// missing scans [first, last] and groups the uncached block indices into
// contiguous runs.
func (b *cachedBlob) missing(ctx context.Context, first, last int64) []run {
	var runs []run
	for index := first; index <= last; index++ {
		if _, ok := b.blocks.Get(ctx, b.key(index)); ok {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].first+runs[n-1].count == index {
			runs[n-1].count++
			continue
		}
		runs = append(runs, run{first: index, count: 1})
	}
	return runs
}

// fetchRuns loads each run with one ranged backend request, bounded to
// fetchParallelism concurrent requests.
func (b *cachedBlob) fetchRuns(ctx context.Context, runs []run) error {
	if len(runs) == 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchParallelism)
	for _, r := range runs {
		g.Go(func() error {
			return b.fetchRun(ctx, r)
		})
	}
	return g.Wait()
}

// fetchRun reads one run and caches the blocks it covers, clamping the
// request at the object size. Blocks past the end are left uncached.
func (b *cachedBlob) fetchRun(ctx context.Context, r run) error {
	start := r.first * b.blockSize
	length := r.count * b.blockSize
	if size := b.Size(); start >= size {
		return nil
	} else if start+length > size {
		length = size - start
	}

	buf := make([]byte, length)
	n, err := b.inner.ReadAt(ctx, buf, start)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	buf = buf[:n]

	for i := int64(0); i < r.count && i*b.blockSize < int64(len(buf)); i++ {
		end := min((i+1)*b.blockSize, int64(len(buf)))
		// Copy out so one cached block does not pin the run buffer.
		data := make([]byte, end-i*b.blockSize)
		copy(data, buf[i*b.blockSize:end])
		b.blocks.Set(ctx, b.key(r.first+i), data)
	}
	return nil
}

// blockData returns one block, reading through to the backend when the
// block was evicted between the fill pass and assembly.
func (b *cachedBlob) blockData(ctx context.Context, index int64) ([]byte, error) {
	if data, ok := b.blocks.Get(ctx, b.key(index)); ok {
		return data, nil
	}

	buf := make([]byte, b.blockSize)
	n, err := b.inner.ReadAt(ctx, buf, index*b.blockSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf = buf[:n]
	b.blocks.Set(ctx, b.key(index), buf)
	return buf, nil
}

// ReadRange serves ranged reads through the block cache. The range is
// clamped to the object size.
func (b *cachedBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	size := b.Size()
	if off >= size {
		return nil, io.EOF
	}
	if off+length > size {
		length = size - off
	}
	return io.NopCloser(&blobSection{blob: b, ctx: ctx, off: off, remaining: length}), nil
}

// blobSection adapts a window of a cachedBlob to io.Reader.
type blobSection struct {
	blob      *cachedBlob
	ctx       context.Context
	off       int64
	remaining int64
}

func (r *blobSection) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}
	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	r.remaining -= int64(n)
	if err == nil && n == 0 {
		err = io.EOF
	}
	return n, err
}

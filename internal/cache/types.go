package cache

import "context"

// Key identifies one cached block of an archive object. Keys are stable
// across processes: object names and block indices come from the snapshot
// layout, not from process state.
type Key struct {
	// Object is the object name within the archive store.
	Object string
	// Block is the block index within the object.
	Block uint64
}

// BlockCache caches immutable blocks of archived snapshot objects.
// Returned slices are shared and must be treated as read-only.
type BlockCache interface {
	// Get returns the cached block for key, or ok=false on a miss.
	Get(ctx context.Context, key Key) (data []byte, ok bool)
	// Set offers a block to the cache. The caller must not modify data
	// afterwards; implementations may retain it without copying.
	Set(ctx context.Context, key Key, data []byte)
	// Invalidate removes every entry whose key matches the predicate.
	Invalidate(predicate func(key Key) bool)
	// Stats reports lifetime hit and miss counts.
	Stats() (hits, misses int64)
	// Close releases any resources held by the implementation.
	Close() error
}

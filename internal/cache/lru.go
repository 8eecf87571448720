package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/dimgo/internal/resource"
)

// LRUBlockCache is a byte-budgeted LRU over snapshot blocks. An optional
// resource.Controller charges the same bytes against the process-wide
// memory budget, so admission can fail even below the local capacity.
type LRUBlockCache struct {
	mu       sync.Mutex
	capacity int64
	used     int64
	entries  map[Key]*node
	head     *node
	tail     *node
	rc       *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

// node is an intrusive list element, most recent at head and the eviction
// candidate at tail.
type node struct {
	key        Key
	data       []byte
	prev, next *node
}

// NewLRUBlockCache creates a cache holding at most capacity bytes. A nil
// controller disables global memory accounting.
func NewLRUBlockCache(capacity int64, rc *resource.Controller) *LRUBlockCache {
	return &LRUBlockCache{
		capacity: capacity,
		entries:  make(map[Key]*node),
		rc:       rc,
	}
}

// Get returns a cached block and marks it most recently used.
func (c *LRUBlockCache) Get(ctx context.Context, key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.touch(n)
	return n.data, true
}

// Set caches a block. Admission never blocks: when the controller denies
// the bytes the block simply stays uncached.
func (c *LRUBlockCache) Set(ctx context.Context, key Key, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.replace(n, data)
		return
	}

	bytes := int64(len(data))

	// A block larger than the whole cache is never admitted.
	if bytes > c.capacity {
		return
	}

	// Evict locally first so the freed bytes are back in the controller
	// before the new block is charged.
	c.evictFor(bytes)
	if !c.rc.TryAcquireMemory(bytes) {
		return
	}

	n := &node{key: key, data: data}
	c.entries[key] = n
	c.pushFront(n)
	c.used += bytes
}

// replace swaps the payload of an existing entry, keeping the old block
// when the controller rejects the growth.
func (c *LRUBlockCache) replace(n *node, data []byte) {
	c.touch(n)

	grown := int64(len(data)) - int64(len(n.data))
	if !c.rc.TryAcquireMemory(grown) {
		return
	}
	c.rc.ReleaseMemory(-grown)

	n.data = data
	c.used += grown
	c.evictFor(0)
}

// Invalidate removes every entry whose key matches the predicate.
func (c *LRUBlockCache) Invalidate(predicate func(key Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, n := range c.entries {
		if predicate(key) {
			c.remove(n)
		}
	}
}

// Stats reports lifetime hit and miss counts.
func (c *LRUBlockCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the bytes currently held.
func (c *LRUBlockCache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

func (c *LRUBlockCache) Close() error {
	return nil
}

// evictFor removes entries from the tail until bytes more fit under the
// local capacity.
func (c *LRUBlockCache) evictFor(bytes int64) {
	for c.tail != nil && c.used+bytes > c.capacity {
		c.remove(c.tail)
	}
}

func (c *LRUBlockCache) remove(n *node) {
	c.unlink(n)
	delete(c.entries, n.key)
	bytes := int64(len(n.data))
	c.used -= bytes
	c.rc.ReleaseMemory(bytes)
}

func (c *LRUBlockCache) touch(n *node) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *LRUBlockCache) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

func (c *LRUBlockCache) pushFront(n *node) {
	n.next = c.head
	n.prev = nil
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

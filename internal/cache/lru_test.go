package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/dimgo/internal/resource"
)

func TestLRUBlockCache(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRUBlockCache(50, rc) // Cache limit 50, Global limit 100
	ctx := context.Background()

	k1 := Key{Object: "epoch-1.dgs", Block: 1}
	v1 := make([]byte, 20)

	k2 := Key{Object: "epoch-1.dgs", Block: 2}
	v2 := make([]byte, 20)

	k3 := Key{Object: "epoch-1.dgs", Block: 3}
	v3 := make([]byte, 20)

	// 1. Set k1 (20 bytes)
	c.Set(ctx, k1, v1)
	assert.Equal(t, int64(20), c.Size())
	assert.Equal(t, int64(20), rc.MemoryUsage())

	// 2. Set k2 (20 bytes) -> Total 40
	c.Set(ctx, k2, v2)
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	// 3. Set k3 (20 bytes) -> Total 60 > 50. Should evict k1 (LRU).
	c.Set(ctx, k3, v3)
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	_, ok := c.Get(ctx, k1)
	assert.False(t, ok, "k1 should be evicted")

	_, ok = c.Get(ctx, k2)
	assert.True(t, ok, "k2 should be present")

	_, ok = c.Get(ctx, k3)
	assert.True(t, ok, "k3 should be present")
}

func TestLRUBlockCache_GlobalLimit(t *testing.T) {
	// Global limit smaller than cache limit
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 30})
	c := NewLRUBlockCache(100, rc)
	ctx := context.Background()

	k1 := Key{Object: "epoch-1.dgs", Block: 1}
	v1 := make([]byte, 20)

	k2 := Key{Object: "epoch-1.dgs", Block: 2}
	v2 := make([]byte, 20)

	// 1. Set k1 (20 bytes)
	c.Set(ctx, k1, v1)
	assert.Equal(t, int64(20), c.Size())

	// 2. Set k2 (20 bytes) -> Total 40 > Global 30. Should fail to acquire and not cache.
	c.Set(ctx, k2, v2)
	assert.Equal(t, int64(20), c.Size())

	_, ok := c.Get(ctx, k2)
	assert.False(t, ok, "k2 should not be cached due to global limit")
}

func TestLRUBlockCache_EdgeCases(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRUBlockCache(50, rc)
	ctx := context.Background()
	k := Key{Object: "epoch-1.dgs", Block: 1}

	// 1. Item larger than capacity
	big := make([]byte, 60)
	c.Set(ctx, k, big)
	_, ok := c.Get(ctx, k)
	assert.False(t, ok, "Item > capacity should not be cached")

	// 2. Update existing item
	v1 := make([]byte, 10)
	c.Set(ctx, k, v1)
	assert.Equal(t, int64(10), c.Size())

	// Update with larger (20 bytes) -> +10 bytes
	v2 := make([]byte, 20)
	c.Set(ctx, k, v2)
	assert.Equal(t, int64(20), c.Size())

	// Update with smaller (5 bytes) -> -15 bytes
	v3 := make([]byte, 5)
	c.Set(ctx, k, v3)
	assert.Equal(t, int64(5), c.Size())

	// 3. Update rejected by the controller keeps the old value.
	rc2 := resource.NewController(resource.Config{MemoryLimitBytes: 10})
	c2 := NewLRUBlockCache(50, rc2)
	c2.Set(ctx, k, make([]byte, 8))

	// Update to 12 bytes needs +4; usage is 8 of 10.
	c2.Set(ctx, k, make([]byte, 12))

	val, ok := c2.Get(ctx, k)
	assert.True(t, ok)
	assert.Len(t, val, 8, "Update should have been rejected by the controller")
}

func TestLRUBlockCache_Stats(t *testing.T) {
	c := NewLRUBlockCache(100, nil)
	ctx := context.Background()
	k := Key{Object: "epoch-1.dgs", Block: 1}
	c.Set(ctx, k, []byte{1})
	c.Get(ctx, k)                                   // Hit
	c.Get(ctx, Key{Object: "epoch-2.dgs", Block: 2}) // Miss

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRUBlockCache_Invalidate(t *testing.T) {
	c := NewLRUBlockCache(100, nil)
	ctx := context.Background()
	c.Set(ctx, Key{Object: "epoch-1.dgs", Block: 1}, []byte("a"))
	c.Set(ctx, Key{Object: "epoch-1.dgs", Block: 2}, []byte("b"))
	c.Set(ctx, Key{Object: "epoch-2.dgs", Block: 1}, []byte("c"))

	// Invalidate all blocks of epoch-1.dgs
	c.Invalidate(func(k Key) bool {
		return k.Object == "epoch-1.dgs"
	})

	_, ok := c.Get(ctx, Key{Object: "epoch-1.dgs", Block: 1})
	assert.False(t, ok)
	_, ok = c.Get(ctx, Key{Object: "epoch-2.dgs", Block: 1})
	assert.True(t, ok)
}

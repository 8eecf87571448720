package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned for reservations larger than the
// whole configured budget, which could never succeed by waiting.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config bounds the resources shared across block caches, prefetchers and
// snapshot transfers.
type Config struct {
	// MemoryLimitBytes caps managed memory. 0 disables the cap and keeps
	// usage tracking only.
	MemoryLimitBytes int64

	// MaxWorkers bounds concurrent workers for prefetch and parallel
	// snapshot loads. 0 means 1.
	MaxWorkers int64

	// IOLimitBytesPerSec throttles snapshot transfer throughput.
	// 0 means unlimited.
	IOLimitBytesPerSec int64
}

// Controller hands out memory reservations, worker slots, and IO tokens.
// Every method is safe on a nil receiver and then behaves as if no limit
// were configured, so call sites need no guards.
type Controller struct {
	mem     memoryGate
	workers *semaphore.Weighted
	limiter *rate.Limiter
}

// NewController builds a controller enforcing cfg.
func NewController(cfg Config) *Controller {
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	c := &Controller{workers: semaphore.NewWeighted(maxWorkers)}
	if cfg.MemoryLimitBytes > 0 {
		c.mem.sem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
		c.mem.limit = cfg.MemoryLimitBytes
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// memoryGate tracks reserved bytes against an optional hard cap.
type memoryGate struct {
	sem   *semaphore.Weighted // nil when only tracking
	limit int64
	used  atomic.Int64
}

func (g *memoryGate) acquire(ctx context.Context, bytes int64) error {
	if g.sem != nil {
		if bytes > g.limit {
			return ErrMemoryLimitExceeded
		}
		if err := g.sem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	g.used.Add(bytes)
	return nil
}

func (g *memoryGate) tryAcquire(bytes int64) bool {
	if g.sem != nil && !g.sem.TryAcquire(bytes) {
		return false
	}
	g.used.Add(bytes)
	return true
}

func (g *memoryGate) release(bytes int64) {
	if g.sem != nil {
		g.sem.Release(bytes)
	}
	g.used.Add(-bytes)
}

// AcquireMemory reserves bytes, waiting until the budget allows it or ctx
// ends. A request larger than the whole budget fails fast with
// ErrMemoryLimitExceeded. Requests of zero or fewer bytes succeed without
// reserving anything.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	return c.mem.acquire(ctx, bytes)
}

// TryAcquireMemory reserves bytes without blocking. On a false return the
// caller picks the drop or retry policy.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}
	return c.mem.tryAcquire(bytes)
}

// ReleaseMemory returns a reservation to the budget.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	c.mem.release(bytes)
}

// MemoryUsage reports the reserved bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.mem.used.Load()
}

// MemoryLimit reports the configured cap, 0 when unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.mem.limit
}

// AcquireWorker takes a worker slot, waiting for one to free up.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.workers.Acquire(ctx, 1)
}

// TryAcquireWorker takes a worker slot without blocking.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	return c.workers.TryAcquire(1)
}

// ReleaseWorker puts a worker slot back.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workers.Release(1)
}

// AcquireIO waits for clearance to move the given number of bytes.
// Requests above the limiter burst drain in burst-sized waits, so one
// oversized write throttles instead of failing.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.limiter == nil {
		return nil
	}
	for burst := c.limiter.Burst(); bytes > burst; bytes -= burst {
		if err := c.limiter.WaitN(ctx, burst); err != nil {
			return err
		}
	}
	return c.limiter.WaitN(ctx, bytes)
}

// TryAcquireIO takes IO tokens without blocking.
func (c *Controller) TryAcquireIO(bytes int) bool {
	if c == nil || c.limiter == nil {
		return true
	}
	return c.limiter.AllowN(time.Now(), bytes)
}

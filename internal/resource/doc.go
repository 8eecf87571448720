// Package resource bounds memory and IO for archive and snapshot work.
//
// The Controller manages three resource types:
//
//   - Memory: track and limit bytes held by block caches and snapshot buffers
//   - Concurrency: limit parallel workers (block prefetch, multi-object load)
//   - IO: rate-limit snapshot reads and writes
//
// Memory tracking uses a weighted semaphore for hard limits and an atomic
// counter for usage. AcquireMemory blocks until the budget allows the
// request or the context ends; TryAcquireMemory fails fast for callers such
// as cache admission that prefer to drop rather than wait:
//
//	c := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 28,
//	})
//	if err := c.AcquireMemory(ctx, n); err != nil {
//	    return err
//	}
//	defer c.ReleaseMemory(n)
//
// IO limiting is a token bucket. RateLimitedReader and RateLimitedWriter
// wrap streams so snapshot transfers respect the budget without per-call
// bookkeeping.
//
// All methods are safe for concurrent use and handle a nil *Controller
// gracefully, so resource limiting stays optional.
package resource

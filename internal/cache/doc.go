// Package cache provides LRU caching for archive block data.
//
// The LRUBlockCache stores recently accessed blocks of snapshot objects
// so repeated dataset loads avoid re-reading from the backing store.
// It enforces a local byte capacity and cooperates with the resource
// controller for global memory limits: admission never blocks, and a
// denied acquisition simply skips caching.
package cache

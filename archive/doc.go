// Package archive stores dataset snapshots as named immutable objects.
//
// A Store maps names to blobs. Snapshots are written once, either
// streamed through Create or landed whole with Put, and never modified
// afterwards; readers rely on that immutability to cache blocks and to
// read ranges without coordination. Every implementation tolerates
// concurrent use.
//
// The package ships stores for several backends:
//
//   - MemoryStore holds everything in process, for tests and
//     ephemeral pipelines.
//   - LocalStore writes through a temp file and rename, so a crashed
//     writer never leaves half a snapshot behind.
//   - CachingStore layers a block-level LRU over any other store.
//   - ThrottledStore bounds the read and write bandwidth of any
//     other store.
//
// Cloud backends live in subpackages: archive/s3 covers Amazon S3,
// S3 Express One Zone and the DynamoDB-backed commit log, and
// archive/minio covers MinIO and other S3-compatible endpoints.
//
// A third-party backend only needs the five Store methods. Blobs it
// opens should serve ReadRange without fetching the whole object
// whenever the backend supports ranged requests; ReadAt exists for
// random access into large snapshots.
package archive

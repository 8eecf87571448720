// Package s3 stores dataset snapshots in Amazon S3.
//
// Store is the standard backend: ranged GetObject reads, paginated
// listings, and multipart uploads with CRC32C checksums. ExpressStore
// targets S3 Express One Zone directory buckets for latency-sensitive
// readers and adds conditional writes through PutIfNotExists. CommitStore
// layers a DynamoDB commit log on top of Store so concurrent writers can
// advance the CURRENT pointer atomically.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("snapshots/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// Blobs read straight from the bucket on every call. Wrap a store in
// archive.NewCachingStore when readers revisit the same blocks.
package s3

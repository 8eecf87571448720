package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/dimgo/internal/hash"
)

// UploadConfig tunes how snapshot objects are written to S3.
type UploadConfig struct {
	// PartSize is the multipart part size in bytes. The default is 8MB,
	// above the SDK's 5MB floor, so large snapshots need fewer round trips.
	PartSize int64

	// Concurrency is how many parts upload in parallel.
	Concurrency int

	// EnableChecksum attaches CRC32C checksums so S3 verifies each part
	// on arrival.
	EnableChecksum bool

	// LeavePartsOnError keeps uploaded parts around after a failed
	// multipart upload instead of aborting it. Useful only for debugging.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns the settings used when a store is built
// without WithUploadConfig.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 << 20,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		u.Concurrency = cfg.Concurrency
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})
}

// encodeChecksum renders a CRC32C sum the way the S3 API expects it,
// base64 over the big-endian bytes.
func encodeChecksum(sum uint32) string {
	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], sum)
	return base64.StdEncoding.EncodeToString(raw[:])
}

// putWithChecksum uploads a small object in one request with server-side
// CRC32C validation.
func putWithChecksum(ctx context.Context, client Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ChecksumCRC32C: aws.String(encodeChecksum(hash.CRC32C(data))),
	})
	return err
}

// streamingWritableBlob pumps writes through an io.Pipe into a multipart
// upload running in the background. The object becomes visible only after
// Close drains the pipe and the final part lands.
type streamingWritableBlob struct {
	pw     *io.PipeWriter
	result chan error

	closed atomic.Bool

	mu       sync.Mutex
	finalErr error
}

// newStreamingWritableBlob starts the background upload and returns the
// write handle feeding it.
func newStreamingWritableBlob(
	ctx context.Context,
	uploader *manager.Uploader,
	bucket, key string,
	enableChecksum bool,
) *streamingWritableBlob {
	pr, pw := io.Pipe()

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   pr,
	}
	if enableChecksum {
		input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	b := &streamingWritableBlob{
		pw:     pw,
		result: make(chan error, 1),
	}

	go func() {
		_, err := uploader.Upload(ctx, input)
		_ = pr.CloseWithError(err)
		b.result <- err
	}()

	return b
}

func (b *streamingWritableBlob) Write(p []byte) (int, error) {
	if b.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return b.pw.Write(p)
}

// Close signals EOF to the uploader and waits for the upload to finish.
// Further calls return the same result.
func (b *streamingWritableBlob) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed.CompareAndSwap(false, true) {
		return b.finalErr
	}
	if err := b.pw.Close(); err != nil {
		b.finalErr = err
		return err
	}
	b.finalErr = <-b.result
	return b.finalErr
}

// Abort tears down the pipe so the upload fails instead of publishing a
// partial object.
func (b *streamingWritableBlob) Abort() error {
	b.closed.Store(true)
	return b.pw.CloseWithError(context.Canceled)
}

// Sync is a no-op. S3 objects have no partial visibility, data lands on
// Close.
func (b *streamingWritableBlob) Sync() error { return nil }

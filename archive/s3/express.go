package s3

import (
	"bytes"
	"context"
	"errors"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/hupe1980/dimgo/archive"
)

// ErrConflict is returned when a conditional write loses the race because
// another writer already published an object under the same name.
var ErrConflict = errors.New("object already exists")

// ExpressStore serves snapshots from an S3 Express One Zone directory
// bucket. The single-zone storage class answers ranged reads in consistent
// single-digit milliseconds, which suits readers that page measurement
// blocks on demand instead of downloading whole snapshots.
//
// Directory buckets differ from general-purpose ones: names end in
// --azid--x-s3, authentication goes through CreateSession, and writes can
// carry If-None-Match conditions.
type ExpressStore struct {
	client Client
	bucket string
	prefix string
	upload UploadConfig
}

// NewExpressStore creates a store backed by the directory bucket. The
// bucket name must carry the --azid--x-s3 suffix.
func NewExpressStore(client Client, bucket, rootPrefix string) *ExpressStore {
	return &ExpressStore{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
		upload: DefaultUploadConfig(),
	}
}

func (s *ExpressStore) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens an object for reading.
func (s *ExpressStore) Open(ctx context.Context, name string) (archive.Blob, error) {
	return openBlob(ctx, s.client, s.bucket, s.key(name))
}

// Put writes an object atomically, overwriting any existing one.
func (s *ExpressStore) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	})
	return err
}

// PutIfNotExists publishes an object only when the name is free. Snapshot
// objects are immutable once written, so a losing writer gets ErrConflict
// instead of silently replacing an epoch.
func (s *ExpressStore) PutIfNotExists(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil && isConditionalConflict(err) {
		return ErrConflict
	}
	return err
}

// isConditionalConflict reports whether err is the rejection of an
// If-None-Match write. Express buckets answer with PreconditionFailed, or
// ConditionalRequestConflict when two conditional writes collide in flight.
func isConditionalConflict(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}

// Create opens an object for streaming writes through the background
// uploader.
func (s *ExpressStore) Create(ctx context.Context, name string) (archive.WritableBlob, error) {
	uploader := newUploader(s.client, s.upload)
	return newStreamingWritableBlob(ctx, uploader, s.bucket, s.key(name), s.upload.EnableChecksum), nil
}

// Delete removes an object.
func (s *ExpressStore) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err
}

// List returns the object names under prefix, relative to the store root
// and sorted.
func (s *ExpressStore) List(ctx context.Context, prefix string) ([]string, error) {
	return listObjects(ctx, s.client, s.bucket, searchPrefix(s.prefix, prefix), s.prefix)
}

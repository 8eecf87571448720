package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/dimgo/archive"
)

// Store implements archive.Store on MinIO or any S3-compatible endpoint
// reachable through the minio-go client.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a store keeping its objects under rootPrefix in the
// given bucket. The prefix may carry a trailing slash or not.
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// isMissing reports whether err says the object does not exist.
func isMissing(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

// Open stats the object to learn its size and returns a ranged-read
// handle.
func (s *Store) Open(ctx context.Context, name string) (archive.Blob, error) {
	key := s.key(name)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMissing(err) {
			return nil, archive.ErrNotFound
		}
		return nil, err
	}

	return &minioBlob{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   info.Size,
	}, nil
}

// Put writes an object atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Create streams writes through a pipe into a background upload. Passing
// size -1 lets the client switch to multipart on its own.
func (s *Store) Create(ctx context.Context, name string) (archive.WritableBlob, error) {
	pr, pw := io.Pipe()
	w := &minioWritableBlob{pw: pw, done: make(chan error, 1)}

	go func() {
		_, err := s.client.PutObject(ctx, s.bucket, s.key(name), pr, -1, minio.PutObjectOptions{})
		_ = pr.CloseWithError(err)
		w.done <- err
	}()

	return w, nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !isMissing(err) {
		return err
	}
	return nil
}

// searchPrefix joins the store root with a caller-supplied listing
// prefix, preserving any trailing slash the caller chose.
func (s *Store) searchPrefix(prefix string) string {
	if s.prefix == "" {
		return prefix
	}
	return strings.TrimSuffix(s.prefix, "/") + "/" + prefix
}

// relativeName strips the store root and the joining slash from a full
// object key.
func (s *Store) relativeName(key string) string {
	rel := strings.TrimPrefix(key, strings.TrimSuffix(s.prefix, "/"))
	return strings.TrimPrefix(rel, "/")
}

// List returns the object names under prefix, relative to the store root
// and sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	listing := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.searchPrefix(prefix),
		Recursive: true,
	})

	var names []string
	for obj := range listing {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if name := s.relativeName(obj.Key); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// minioBlob reads one object through ranged GetObject requests.
type minioBlob struct {
	client *minio.Client
	bucket string
	key    string
	size   int64
}

func (b *minioBlob) Size() int64 { return b.size }

func (b *minioBlob) Close() error { return nil }

// get opens the inclusive byte range [off, end] of the object.
func (b *minioBlob) get(ctx context.Context, off, end int64) (*minio.Object, error) {
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return nil, err
	}
	return b.client.GetObject(ctx, b.bucket, b.key, opts)
}

// tail returns the inclusive end offset of a read of n bytes at off,
// clamped to the last byte of the object.
func (b *minioBlob) tail(off, n int64) int64 {
	end := off + n - 1
	if end >= b.size {
		end = b.size - 1
	}
	return end
}

// ReadAt fills p from offset off. A read truncated by the end of the
// object reports io.EOF alongside the bytes it did get.
func (b *minioBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off >= b.size {
		return 0, io.EOF
	}

	end := b.tail(off, int64(len(p)))
	obj, err := b.get(ctx, off, end)
	if err != nil {
		return 0, err
	}
	defer obj.Close()

	n, err := io.ReadFull(obj, p[:end-off+1])
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ReadRange streams [off, off+length) straight from the object. The
// caller owns the returned reader and must close it.
func (b *minioBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= b.size {
		return nil, io.EOF
	}
	return b.get(ctx, off, b.tail(off, length))
}

// minioWritableBlob feeds the background upload started by Create.
type minioWritableBlob struct {
	pw     *io.PipeWriter
	done   chan error
	closed atomic.Bool
}

func (b *minioWritableBlob) Write(p []byte) (int, error) {
	return b.pw.Write(p)
}

// Close signals EOF to the upload and waits for it to finish.
func (b *minioWritableBlob) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return archive.ErrClosed
	}
	if err := b.pw.Close(); err != nil {
		return err
	}
	return <-b.done
}

// Abort cancels the upload. Safe to call after Close.
func (b *minioWritableBlob) Abort() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	return b.pw.CloseWithError(context.Canceled)
}

// Sync is a no-op, the object only becomes visible on Close.
func (b *minioWritableBlob) Sync() error { return nil }

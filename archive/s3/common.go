package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/dimgo/archive"
)

// baseBlob is the read side shared by Store and ExpressStore. Every read
// turns into a ranged GetObject against the same key.
type baseBlob struct {
	client Client
	bucket string
	key    string
	size   int64
}

func (b *baseBlob) Size() int64 { return b.size }

func (b *baseBlob) Close() error { return nil }

// get issues a ranged GetObject for the inclusive byte range [off, end].
func (b *baseBlob) get(ctx context.Context, off, end int64) (io.ReadCloser, error) {
	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// tail returns the inclusive end offset of a read of n bytes at off,
// clamped to the last byte of the object.
func (b *baseBlob) tail(off, n int64) int64 {
	end := off + n - 1
	if end >= b.size {
		end = b.size - 1
	}
	return end
}

// ReadAt fills p from offset off with a single ranged request. A read that
// stops exactly at the end of the object succeeds with n < len(p); a
// shorter response reports io.EOF.
func (b *baseBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off >= b.size {
		return 0, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	body, err := b.get(ctx, off, b.tail(off, int64(len(p))))
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	n, err := io.ReadFull(body, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		if off+int64(n) == b.size {
			return n, nil
		}
		return n, io.EOF
	}
	return n, err
}

// ReadRange streams [off, off+length) straight from the response body. The
// caller owns the returned reader and must close it.
func (b *baseBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= b.size {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.get(ctx, off, b.tail(off, length))
}

// openBlob resolves an object's size with HeadObject and wraps it as a
// blob. Missing objects map to archive.ErrNotFound.
func openBlob(ctx context.Context, client Client, bucket, key string) (*baseBlob, error) {
	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, archive.ErrNotFound
		}
		return nil, err
	}
	return &baseBlob{
		client: client,
		bucket: bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// isNotFound reports whether err is one of the S3 shapes of "no such
// object". HeadObject surfaces types.NotFound while GetObject uses
// types.NoSuchKey.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}

// searchPrefix joins the store root with a caller-supplied listing prefix.
// Listing prefixes are raw string matches rather than object keys, so a
// trailing slash must survive the join.
func searchPrefix(rootPrefix, prefix string) string {
	if rootPrefix == "" {
		return prefix
	}
	if prefix == "" {
		return rootPrefix + "/"
	}
	return rootPrefix + "/" + prefix
}

// listObjects walks the paginated listing under fullPrefix and returns the
// object names relative to rootPrefix, sorted.
func listObjects(ctx context.Context, client Client, bucket, fullPrefix, rootPrefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(fullPrefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			names = append(names, relativeName(aws.ToString(obj.Key), rootPrefix))
		}
	}
	sort.Strings(names)
	return names, nil
}

// relativeName strips rootPrefix and the joining slash from a full object
// key. Keys outside the root come back unchanged.
func relativeName(key, rootPrefix string) string {
	if rootPrefix == "" {
		return key
	}
	rel, ok := strings.CutPrefix(key, rootPrefix)
	if !ok || rel == "" {
		return key
	}
	return strings.TrimPrefix(rel, "/")
}

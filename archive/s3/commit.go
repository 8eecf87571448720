package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/dimgo/archive"
)

// CurrentName is the virtual object holding the name of the latest
// published snapshot.
const CurrentName = "CURRENT"

// ErrConcurrentModification is returned when another writer published a
// new version between this writer's read and its commit.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// Commit log attribute names.
const (
	attrBaseURI  = "base_uri"
	attrVersion  = "version"
	attrSnapshot = "snapshot_path"
)

// DDBClient is the slice of the DynamoDB API the commit log needs.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore pairs an S3 store with a DynamoDB commit log so concurrent
// writers can publish snapshots safely. Snapshot objects go to S3 as
// usual; the CURRENT pointer lives in DynamoDB, whose conditional writes
// supply the compare-and-swap that S3 lacks.
//
// The table keys commits by base_uri (string partition key) with a
// monotonically increasing version (numeric sort key). Reading CURRENT
// resolves the highest version; writing it appends version+1 and reports
// ErrConcurrentModification when another writer got there first.
type CommitStore struct {
	objects *Store
	ddb     DDBClient
	table   string
	baseURI string
}

// NewCommitStore wires an S3 store to the commit log table. baseURI names
// the snapshot collection, conventionally "s3://bucket/prefix", and
// becomes the partition key of its commit history.
func NewCommitStore(objects *Store, ddb DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		objects: objects,
		ddb:     ddb,
		table:   tableName,
		baseURI: baseURI,
	}
}

// Open opens an object for reading. CurrentName resolves through the
// commit log instead of S3.
func (s *CommitStore) Open(ctx context.Context, name string) (archive.Blob, error) {
	if name != CurrentName {
		return s.objects.Open(ctx, name)
	}
	rec, ok, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, archive.ErrNotFound
	}
	return newPointerBlob(rec.path), nil
}

// Put writes an object. Writing CurrentName commits a new version in the
// log; everything else passes through to S3.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == CurrentName {
		return s.advance(ctx, string(data))
	}
	return s.objects.Put(ctx, name, data)
}

// Create opens an object for streaming writes.
func (s *CommitStore) Create(ctx context.Context, name string) (archive.WritableBlob, error) {
	return s.objects.Create(ctx, name)
}

// Delete removes an object.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	return s.objects.Delete(ctx, name)
}

// List returns the object names under prefix, sorted.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.objects.List(ctx, prefix)
}

// commitRecord is one entry of a collection's commit history.
type commitRecord struct {
	version uint64
	path    string
}

func (r commitRecord) item(baseURI string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrBaseURI:  &types.AttributeValueMemberS{Value: baseURI},
		attrVersion:  &types.AttributeValueMemberN{Value: strconv.FormatUint(r.version, 10)},
		attrSnapshot: &types.AttributeValueMemberS{Value: r.path},
	}
}

func decodeCommitRecord(item map[string]types.AttributeValue) (commitRecord, error) {
	num, ok := item[attrVersion].(*types.AttributeValueMemberN)
	if !ok {
		return commitRecord{}, fmt.Errorf("commit log item missing %s", attrVersion)
	}
	version, err := strconv.ParseUint(num.Value, 10, 64)
	if err != nil {
		return commitRecord{}, fmt.Errorf("parse %s: %w", attrVersion, err)
	}
	str, ok := item[attrSnapshot].(*types.AttributeValueMemberS)
	if !ok {
		return commitRecord{}, fmt.Errorf("commit log item missing %s", attrSnapshot)
	}
	return commitRecord{version: version, path: str.Value}, nil
}

// latest returns the highest committed record for this collection, with
// ok=false when the history is empty.
func (s *CommitStore) latest(ctx context.Context) (commitRecord, bool, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return commitRecord{}, false, fmt.Errorf("query commit log: %w", err)
	}
	if len(resp.Items) == 0 {
		return commitRecord{}, false, nil
	}
	rec, err := decodeCommitRecord(resp.Items[0])
	if err != nil {
		return commitRecord{}, false, err
	}
	return rec, true, nil
}

// advance publishes path as the next version. Allocating version+1 under
// attribute_not_exists makes the append a compare-and-swap: two writers
// that both read version N race to write N+1 and exactly one wins.
func (s *CommitStore) advance(ctx context.Context, path string) error {
	rec, _, err := s.latest(ctx)
	if err != nil {
		return err
	}

	next := commitRecord{version: rec.version + 1, path: path}
	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                next.item(s.baseURI),
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var check *types.ConditionalCheckFailedException
		if errors.As(err, &check) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("commit version %d: %w", next.version, err)
	}
	return nil
}

// pointerBlob serves the CURRENT content resolved from the commit log.
type pointerBlob struct {
	r *bytes.Reader
}

func newPointerBlob(content string) *pointerBlob {
	return &pointerBlob{r: bytes.NewReader([]byte(content))}
}

func (b *pointerBlob) Size() int64 { return b.r.Size() }

func (b *pointerBlob) Close() error { return nil }

func (b *pointerBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return b.r.ReadAt(p, off)
}

func (b *pointerBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= b.r.Size() {
		return nil, io.EOF
	}
	return io.NopCloser(io.NewSectionReader(b.r, off, length)), nil
}

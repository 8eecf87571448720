package s3

import (
	"context"
	"io"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dimgo/archive"
)

// mockDDBClient simulates DynamoDB conditional writes in memory.
type mockDDBClient struct {
	mu sync.Mutex
	// baseURI -> version -> snapshot path
	items map[string]map[uint64]string
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[uint64]string)}
}

func (m *mockDDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uri := params.Item["base_uri"].(*types.AttributeValueMemberS).Value
	version, err := strconv.ParseUint(params.Item["version"].(*types.AttributeValueMemberN).Value, 10, 64)
	if err != nil {
		return nil, err
	}
	path := params.Item["snapshot_path"].(*types.AttributeValueMemberS).Value

	if m.items[uri] == nil {
		m.items[uri] = make(map[uint64]string)
	}
	if _, exists := m.items[uri][version]; exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	m.items[uri][version] = path
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uri := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value

	var latest uint64
	for v := range m.items[uri] {
		if v > latest {
			latest = v
		}
	}
	if latest == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{{
			"base_uri":      &types.AttributeValueMemberS{Value: uri},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(latest, 10)},
			"snapshot_path": &types.AttributeValueMemberS{Value: m.items[uri][latest]},
		}},
	}, nil
}

func (m *mockDDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{}, nil
}

func (m *mockDDBClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return &dynamodb.DeleteItemOutput{}, nil
}

// staleQueryClient always reports an empty history so that the
// subsequent conditional put collides with an existing version.
type staleQueryClient struct {
	DDBClient
}

func (c *staleQueryClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}

func readCurrent(t *testing.T, store *CommitStore) string {
	t.Helper()
	blob, err := store.Open(context.Background(), CurrentName)
	require.NoError(t, err)
	defer blob.Close()

	rc, err := blob.ReadRange(context.Background(), 0, blob.Size())
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestCommitStore_NotFoundBeforeCommit(t *testing.T) {
	store := NewCommitStore(nil, newMockDDBClient(), "dimgo-commits", "s3://bucket/run-1")
	_, err := store.Open(context.Background(), CurrentName)
	assert.ErrorIs(t, err, archive.ErrNotFound)
}

func TestCommitStore_FirstCommit(t *testing.T) {
	store := NewCommitStore(nil, newMockDDBClient(), "dimgo-commits", "s3://bucket/run-1")

	err := store.Put(context.Background(), CurrentName, []byte("epoch-1.dgs"))
	require.NoError(t, err)

	assert.Equal(t, "epoch-1.dgs", readCurrent(t, store))
}

func TestCommitStore_MultipleCommits(t *testing.T) {
	store := NewCommitStore(nil, newMockDDBClient(), "dimgo-commits", "s3://bucket/run-1")

	for _, name := range []string{"epoch-1.dgs", "epoch-2.dgs", "epoch-3.dgs"} {
		require.NoError(t, store.Put(context.Background(), CurrentName, []byte(name)))
	}

	assert.Equal(t, "epoch-3.dgs", readCurrent(t, store))
}

func TestCommitStore_ConcurrentCommits(t *testing.T) {
	ddb := newMockDDBClient()

	writer1 := NewCommitStore(nil, ddb, "dimgo-commits", "s3://bucket/run-1")
	require.NoError(t, writer1.Put(context.Background(), CurrentName, []byte("epoch-1.dgs")))

	// The second writer raced the first and still believes the
	// history is empty. Its conditional put must fail.
	writer2 := NewCommitStore(nil, &staleQueryClient{ddb}, "dimgo-commits", "s3://bucket/run-1")
	err := writer2.Put(context.Background(), CurrentName, []byte("epoch-1-other.dgs"))
	assert.ErrorIs(t, err, ErrConcurrentModification)

	assert.Equal(t, "epoch-1.dgs", readCurrent(t, writer1))
}

func TestCommitStore_IsolatedNamespaces(t *testing.T) {
	ddb := newMockDDBClient()

	runA := NewCommitStore(nil, ddb, "dimgo-commits", "s3://bucket/run-a")
	runB := NewCommitStore(nil, ddb, "dimgo-commits", "s3://bucket/run-b")

	require.NoError(t, runA.Put(context.Background(), CurrentName, []byte("a-1.dgs")))
	require.NoError(t, runB.Put(context.Background(), CurrentName, []byte("b-1.dgs")))
	require.NoError(t, runA.Put(context.Background(), CurrentName, []byte("a-2.dgs")))

	assert.Equal(t, "a-2.dgs", readCurrent(t, runA))
	assert.Equal(t, "b-1.dgs", readCurrent(t, runB))
}

func TestCommitStore_Passthrough(t *testing.T) {
	mockClient := new(MockS3Client)
	mockClient.On("PutObject", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		in := args.Get(1).(*awss3.PutObjectInput)
		_, _ = io.ReadAll(in.Body)
	}).Return(&awss3.PutObjectOutput{}, nil)

	inner := NewStore(mockClient, "bucket", "run-1")
	store := NewCommitStore(inner, newMockDDBClient(), "dimgo-commits", "s3://bucket/run-1")

	err := store.Put(context.Background(), "epoch-1.dgs", []byte("payload"))
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-backend/internal/shared/storage/object"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	lastPut *s3.PutObjectInput
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.lastPut = in
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   aws.String(f.types[aws.ToString(in.Key)]),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestPutGetRoundTrip(t *testing.T) {
	fake := newFakeS3()
	store := newWithClient(fake, "fleet-bucket", "/photos/", "")

	info, err := store.Put(context.Background(), "inspection-photos/rec-1", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, object.Info{Key: "inspection-photos/rec-1", ContentType: "image/png", Size: int64(len(pngHeader))}, info)

	require.NotNil(t, fake.lastPut)
	assert.Equal(t, "photos/inspection-photos/rec-1", aws.ToString(fake.lastPut.Key))
	assert.Equal(t, s3types.ServerSideEncryptionAes256, fake.lastPut.ServerSideEncryption)

	rc, got, err := store.Get(context.Background(), "inspection-photos/rec-1")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, pngHeader, body)
	assert.Equal(t, "image/png", got.ContentType)
	assert.EqualValues(t, len(pngHeader), got.Size)
}

func TestPutUsesKMSWhenConfigured(t *testing.T) {
	fake := newFakeS3()
	store := newWithClient(fake, "fleet-bucket", "", " kms-key ")

	_, err := store.Put(context.Background(), "k", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, s3types.ServerSideEncryptionAwsKms, fake.lastPut.ServerSideEncryption)
	assert.Equal(t, "kms-key", aws.ToString(fake.lastPut.SSEKMSKeyId))
}

func TestGetMapsMissingKey(t *testing.T) {
	store := newWithClient(newFakeS3(), "fleet-bucket", "", "")

	_, _, err := store.Get(context.Background(), "inspection-photos/none")
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestGetWrapsOtherErrors(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("access denied")
	store := newWithClient(fake, "fleet-bucket", "", "")

	_, _, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, object.ErrNotFound)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), "us-east-1", "", "", "")
	assert.Error(t, err)
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "inspection-photos/rec-1", want: "inspection-photos/rec-1"},
		{name: "simple prefix", prefix: "fleet", key: "inspection-photos/rec-1", want: "fleet/inspection-photos/rec-1"},
		{name: "prefix and key slashes", prefix: "/fleet/", key: "/inspection-photos/rec-1", want: "fleet/inspection-photos/rec-1"},
		{name: "nested prefix", prefix: "fleet/sub", key: "inspection-photos/rec-1", want: "fleet/sub/inspection-photos/rec-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, applyPrefix(tt.prefix, tt.key))
		})
	}
}

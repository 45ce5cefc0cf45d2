package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte

	putErr    error
	getErr    error
	deleteErr error

	deletedKeys []string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.objects, *in.Key)
	f.deletedKeys = append(f.deletedKeys, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_WriteReadDelete(t *testing.T) {
	fake := newFakeS3()
	store := &S3Store{client: fake, bucket: "vault"}
	ctx := context.Background()

	locator, err := store.Write(ctx, []byte("ciphertext"))
	require.NoError(t, err)
	require.NotEmpty(t, locator)
	assert.True(t, strings.HasPrefix(locator, "users/"))

	got, err := store.Read(ctx, locator)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext"), got)

	require.NoError(t, store.Delete(ctx, locator))
	assert.Equal(t, []string{locator}, fake.deletedKeys)

	_, err = store.Read(ctx, locator)
	assert.Error(t, err)
}

func TestS3Store_FreshLocatorPerWrite(t *testing.T) {
	fake := newFakeS3()
	store := &S3Store{client: fake, bucket: "vault"}
	ctx := context.Background()

	loc1, err := store.Write(ctx, []byte("same"))
	require.NoError(t, err)
	loc2, err := store.Write(ctx, []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, loc1, loc2)
	assert.Len(t, fake.objects, 2)
}

func TestS3Store_WriteError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("minio down")
	store := &S3Store{client: fake, bucket: "vault"}

	_, err := store.Write(context.Background(), []byte("x"))
	assert.ErrorContains(t, err, "minio down")
}

func TestS3Store_DeleteError(t *testing.T) {
	fake := newFakeS3()
	fake.deleteErr = errors.New("minio down")
	store := &S3Store{client: fake, bucket: "vault"}

	err := store.Delete(context.Background(), "users/x")
	assert.ErrorContains(t, err, "minio down")
}

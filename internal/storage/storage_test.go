package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabbyferm/savory/backend/config"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/images/recipes")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, "abc.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/images/recipes/abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "abc.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, url))
}

func TestLocalStoreStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "images"), "/images/recipes")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../escape.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/images/recipes/escape.png", url)
	_, err = os.Stat(filepath.Join(dir, "images", "escape.png"))
	assert.NoError(t, err)

	_, err = store.Save(context.Background(), "..", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	body    string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3Store(fake, "savory-images", "eu-west-1", "")
	ctx := context.Background()

	url, err := store.Save(ctx, "r1.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://savory-images.s3.eu-west-1.amazonaws.com/recipes/r1.jpg", url)
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "recipes/r1.jpg", aws.ToString(fake.puts[0].Key))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.puts[0].ContentType))
	assert.Equal(t, "jpeg", fake.body)

	require.NoError(t, store.Delete(ctx, url))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "recipes/r1.jpg", aws.ToString(fake.deletes[0].Key))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.ErrorContains(t, err, "unsupported storage driver")
}

func TestNewLocal(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{
		Driver:        config.StorageLocal,
		LocalDir:      t.TempDir(),
		PublicBaseURL: "/images/recipes",
	})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)
}

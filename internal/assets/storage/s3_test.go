package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/foliocraft-backend/internal/assets/domain"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	body    string
	deletes []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestPutAndDelete(t *testing.T) {
	fake := &fakeS3{}
	h := NewS3Host(fake, "bucket", "https://cdn.example.com/")

	require.NoError(t, h.Put(context.Background(), "users/u1/a.png", strings.NewReader("png"), 3, "image/png"))
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "bucket", aws.ToString(fake.puts[0].Bucket))
	assert.Equal(t, "image/png", aws.ToString(fake.puts[0].ContentType))
	assert.Equal(t, "png", fake.body)

	require.NoError(t, h.Delete(context.Background(), "users/u1/a.png"))
	assert.Equal(t, []string{"users/u1/a.png"}, fake.deletes)

	fake.err = errors.New("boom")
	assert.Error(t, h.Delete(context.Background(), "x"))
}

func TestKeyFromURL(t *testing.T) {
	h := NewS3Host(&fakeS3{}, "bucket", "https://cdn.example.com")

	key, err := h.KeyFromURL(h.URL("users/u1/a.png"))
	require.NoError(t, err)
	assert.Equal(t, "users/u1/a.png", key)

	key, err = h.KeyFromURL("https://cdn.example.com/users/u1/a.png?v=2")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/a.png", key)

	for _, u := range []string{"https://evil.example.com/users/u1/a.png", "https://cdn.example.com/", "https://cdn.example.com/users/../x"} {
		_, err := h.KeyFromURL(u)
		assert.ErrorIs(t, err, domain.ErrForeignURL, u)
	}
}

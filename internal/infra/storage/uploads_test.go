package storage

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_PutKeyShape(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "lustrea-uploads")

	key, err := store.Put(context.Background(), UploadInput{
		Prefix:      "payments/",
		Filename:    "gcash receipt.PNG",
		ContentType: "image/png",
		Body:        bytes.NewReader([]byte("fake")),
	})
	require.NoError(t, err)

	// payments/<unix>_<8 hex chars>_gcash_receipt.PNG
	assert.Regexp(t, regexp.MustCompile(`^payments/\d+_[0-9a-f]{8}_gcash_receipt\.PNG$`), key)

	require.Len(t, client.inputs, 1)
	assert.Equal(t, "lustrea-uploads", *client.inputs[0].Bucket)
	assert.Equal(t, key, *client.inputs[0].Key)
	assert.Equal(t, "image/png", *client.inputs[0].ContentType)
}

func TestS3Store_PutError(t *testing.T) {
	store := NewS3Store(&fakeS3{err: errors.New("denied")}, "lustrea-uploads")

	_, err := store.Put(context.Background(), UploadInput{
		Prefix:   "designs",
		Filename: "a.jpg",
		Body:     bytes.NewReader(nil),
	})
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"nail art.jpg":       "nail_art.jpg",
		"../../../etc/權.png": ".png",
		"漢字":                 "upload",
		"a b c-d_e.webp":     "a_b_c-d_e.webp",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/jpeg"))
	assert.True(t, IsImageContentType("image/webp"))
	assert.False(t, IsImageContentType("application/pdf"))
	assert.False(t, IsImageContentType(""))
}

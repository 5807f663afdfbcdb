package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MaxUploadBytes caps design image and payment proof uploads.
const MaxUploadBytes = 10 << 20 // 10MB

// Uploader stores raw bytes and returns an opaque reference. Handlers
// never talk to S3 directly.
type Uploader interface {
	Put(ctx context.Context, in UploadInput) (string, error)
}

type UploadInput struct {
	Prefix      string
	Filename    string
	ContentType string
	Body        io.Reader
}

// IsImageContentType does the only content screening in scope: a MIME
// prefix check.
func IsImageContentType(ct string) bool {
	return strings.HasPrefix(ct, "image/")
}

// S3API is the subset of the S3 client the store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	bucket string
	client S3API
}

func NewS3Store(client S3API, bucket string) *S3Store {
	return &S3Store{bucket: bucket, client: client}
}

// Put writes the object under prefix/, keyed by timestamp + random id +
// the sanitized original name, and returns the key.
func (s *S3Store) Put(ctx context.Context, in UploadInput) (string, error) {
	key := fmt.Sprintf(
		"%s/%d_%s_%s",
		strings.Trim(in.Prefix, "/"),
		time.Now().Unix(),
		uuid.NewString()[:8],
		sanitizeFilename(in.Filename),
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        in.Body,
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return key, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

var _ Uploader = (*S3Store)(nil)

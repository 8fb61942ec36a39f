package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service stores uploads in Amazon S3 (or a compatible API).
type S3Service struct {
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
	region    string
	endpoint  string
}

// S3Options configures the bucket layout and how public URLs are built. When
// Endpoint is set (e.g. minio), URLs are path-style against that endpoint.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	Region    string
	Endpoint  string
}

func NewS3Service(client *s3.Client, opts S3Options) (*S3Service, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	return &S3Service{
		uploader:  manager.NewUploader(client),
		bucket:    opts.Bucket,
		keyPrefix: strings.Trim(opts.KeyPrefix, "/"),
		region:    opts.Region,
		endpoint:  strings.TrimSuffix(opts.Endpoint, "/"),
	}, nil
}

func (s *S3Service) SaveUpload(ctx context.Context, originalName, contentType string, r io.Reader) (string, error) {
	key := uploadKey(originalName)
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *S3Service) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// Package storage talks to the S3-compatible bucket that holds user assets.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/foliocraft/foliocraft-backend/config"
	"github.com/foliocraft/foliocraft-backend/internal/assets/domain"
)

// ObjectAPI is the subset of *s3.Client the host needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Host stores objects under Bucket and exposes them below PublicBaseURL.
type S3Host struct {
	client     ObjectAPI
	bucket     string
	publicBase string
}

func NewS3Host(client ObjectAPI, bucket, publicBase string) *S3Host {
	return &S3Host{client: client, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}
}

// NewFromConfig builds an S3 client from the default credential chain. A
// custom endpoint (MinIO, R2) switches to path-style addressing.
func NewFromConfig(ctx context.Context, cfg *config.AssetsConfig) (*S3Host, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("aws config load: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return NewS3Host(client, cfg.Bucket, base), nil
}

func (h *S3Host) URL(key string) string {
	return h.publicBase + "/" + key
}

// KeyFromURL reverses URL. URLs outside the public base are rejected.
func (h *S3Host) KeyFromURL(u string) (string, error) {
	prefix := h.publicBase + "/"
	if !strings.HasPrefix(u, prefix) {
		return "", domain.ErrForeignURL
	}
	key := strings.TrimPrefix(u, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" || strings.Contains(key, "..") {
		return "", domain.ErrForeignURL
	}
	return key, nil
}

func (h *S3Host) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (h *S3Host) Delete(ctx context.Context, key string) error {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

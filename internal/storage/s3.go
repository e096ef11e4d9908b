package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"jobboard-backend/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds configuration for S3-compatible resume storage
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // non-empty for MinIO, Wasabi and friends; enables path-style addressing
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string // key prefix inside the bucket, e.g. "uploads"
}

// ObjectGetter is the slice of the S3 API the store uses
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store serves resume binaries from an S3 bucket
type S3Store struct {
	client ObjectGetter
	bucket string
	prefix string
}

func NewS3Store(client ObjectGetter, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Client builds an S3 client; static credentials are used when both keys are set,
// otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3Store) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func (s *S3Store) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, 0, domain.ErrFileNotFound
		}
		return nil, 0, fmt.Errorf("get object %s: %w", key, err)
	}
	// Unknown length streams without a Content-Length header
	size := int64(-1)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}

// Package storage holds the ResumeStore backends: a local directory and S3.
package storage

import (
	"context"
	"fmt"

	"jobboard-backend/config"
	"jobboard-backend/internal/domain"
)

// New picks the backend named by cfg.StorageDriver
func New(ctx context.Context, cfg *config.Config) (domain.ResumeStore, error) {
	switch cfg.StorageDriver {
	case "", config.StorageDriverLocal:
		return NewLocalStore(cfg.UploadDir), nil
	case config.StorageDriverS3:
		client, err := NewS3Client(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3Bucket, cfg.UploadDir), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

package storage

import (
	"context"
	"fmt"

	"mongo-backup/internal/config"
)

// NewObjectStore creates an object store based on configuration. The
// bucket identifier from the secret bundle, when present, takes precedence
// over the configured one.
func NewObjectStore(ctx context.Context, cfg *config.Config, secretBucket string) (ObjectStore, error) {
	switch cfg.StorageProvider {
	case "s3":
		bucket := cfg.S3.Bucket
		if secretBucket != "" {
			bucket = secretBucket
		}
		if bucket == "" {
			return nil, fmt.Errorf("no S3 bucket configured and none supplied by the secret")
		}

		s3Config := S3Config{
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			Bucket:          bucket,
			Endpoint:        cfg.S3.Endpoint,
			UsePathStyle:    cfg.S3.Endpoint != "", // Use path style for custom endpoints
		}
		store, err := NewS3Store(ctx, s3Config)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 storage: %w", err)
		}
		return store, nil

	case "gcs":
		if cfg.GCS.ServiceAccountJSON != "" {
			if err := ValidateServiceAccountJSON(cfg.GCS.ServiceAccountJSON); err != nil {
				return nil, fmt.Errorf("invalid GCS service account: %w", err)
			}
		}

		gcsConfig := GCSConfig{
			Bucket:             cfg.GCS.Bucket,
			ProjectID:          cfg.GCS.ProjectID,
			ServiceAccountJSON: cfg.GCS.ServiceAccountJSON,
		}
		store, err := NewGCSStore(ctx, gcsConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create gcs storage: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.StorageProvider)
	}
}

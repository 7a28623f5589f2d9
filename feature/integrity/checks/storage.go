package checks

import (
	"context"
	"fmt"
	"strings"

	"movies-app/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the snapshot bucket.
type StorageReport struct {
	Bucket       string `json:"bucket"`
	BucketExists bool   `json:"bucket_exists"`
	Prefix       string `json:"prefix"`
	Snapshots    int    `json:"snapshots"`
}

// CheckStorage reports whether the bucket exists and how many objects sit under prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Prefix: prefix}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	folder := strings.Trim(prefix, "/")
	if folder != "" {
		folder += "/"
	}
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: folder, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
		}
		report.Snapshots++
	}
	return report, nil
}

// FixStorage creates the bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Bucket ready", zap.String("bucket", bucket))
	return nil
}

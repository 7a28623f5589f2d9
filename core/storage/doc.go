// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client with the handful of operations the catalog
// export needs: ensuring the bucket exists, writing a snapshot, reading it
// back and listing previous snapshots. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, so that
// storage interactions can be mocked in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

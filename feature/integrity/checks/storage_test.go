package checks_test

import (
	"context"
	"testing"

	"movies-app/core/storage/mocks"
	"movies-app/feature/integrity/checks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Bucket missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "catalog").Return(false, nil)

		report, err := checks.CheckStorage(ctx, client, "catalog", "snapshots")
		require.NoError(t, err)
		assert.False(t, report.BucketExists)
		assert.Zero(t, report.Snapshots)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Counts snapshots", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "catalog").Return(true, nil)
		client.On("ListObjects", ctx, "catalog", minio.ListObjectsOptions{Prefix: "snapshots/", Recursive: true}).
			Return(mocks.Objects(minio.ObjectInfo{Key: "snapshots/catalog-1.json"}, minio.ObjectInfo{Key: "snapshots/catalog-2.json"}))

		report, err := checks.CheckStorage(ctx, client, "catalog", "/snapshots/")
		require.NoError(t, err)
		assert.True(t, report.BucketExists)
		assert.Equal(t, 2, report.Snapshots)
		client.AssertExpectations(t)
	})

	t.Run("Listing error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "catalog").Return(true, nil)
		client.On("ListObjects", ctx, "catalog", mock.Anything).Return(mocks.Objects(minio.ObjectInfo{Err: assert.AnError}))

		_, err := checks.CheckStorage(ctx, client, "catalog", "snapshots")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Exists error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "catalog").Return(false, assert.AnError)

		_, err := checks.CheckStorage(ctx, client, "catalog", "snapshots")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFixStorage(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("BucketExists", ctx, "catalog").Return(false, nil)
	client.On("MakeBucket", ctx, "catalog", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

	require.NoError(t, checks.FixStorage(ctx, client, "catalog", "eu-west-1", zap.NewNop()))
	client.AssertExpectations(t)
}

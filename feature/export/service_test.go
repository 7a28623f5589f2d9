package export

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"movies-app/core/database"
	"movies-app/core/storage"
	"movies-app/core/storage/mocks"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var exportTime = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *mocks.Client, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, catalog.Migrate(db))

	client := new(mocks.Client)
	svc := NewService(client, storage.Config{Bucket: "catalog", ExportPrefix: "/snapshots/"}, db, zap.NewNop())
	svc.now = func() time.Time { return exportTime }
	svc.newID = func() string { return "abcd1234" }
	return svc, client, db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	movie := models.Movie{Title: "Alien", ReleaseDate: time.Date(1979, 5, 25, 0, 0, 0, 0, time.UTC), Genre: "Sci-Fi", Price: 9.99}
	require.NoError(t, db.Create(&movie).Error)
	artist := models.Artist{FirstName: "Sigourney", LastName: "Weaver", Birthday: time.Date(1949, 10, 8, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&artist).Error)
	require.NoError(t, db.Create(&models.MovieArtist{MovieID: movie.ID, ArtistID: artist.ID}).Error)
}

func TestExport(t *testing.T) {
	svc, client, db := setupService(t)
	seedCatalog(t, db)

	var uploaded []byte
	client.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "catalog", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "catalog", "snapshots/catalog-1718409600000000000-abcd1234.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	res, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "snapshots/catalog-1718409600000000000-abcd1234.json", res.Key)
	assert.Equal(t, 1, res.Movies)
	assert.Equal(t, 1, res.Artists)
	assert.Equal(t, 1, res.Links)
	assert.Equal(t, int64(len(uploaded)), res.Size)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(uploaded, &snap))
	assert.True(t, exportTime.Equal(snap.ExportedAt))
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, []int{snap.Artists[0].ID}, snap.Movies[0].ArtistIDs)

	client.AssertExpectations(t)
}

func TestExport_UploadFails(t *testing.T) {
	svc, client, _ := setupService(t)

	client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	_, err := svc.Export(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestExport_ConcurrentCallsCoalesce(t *testing.T) {
	svc, client, _ := setupService(t)

	started := make(chan struct{})
	release := make(chan time.Time)
	var once sync.Once

	client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { once.Do(func() { close(started) }) }).
		WaitUntil(release).
		Return(minio.UploadInfo{}, nil)

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = svc.Export(context.Background())
	}()

	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = svc.Export(context.Background())
	}()

	// Give the second caller time to join the in-flight export.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NotNil(t, results[0])
	assert.Same(t, results[0], results[1])
	client.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestExport_CallerCancelDoesNotFailShared(t *testing.T) {
	svc, client, _ := setupService(t)

	started := make(chan struct{})
	release := make(chan time.Time)
	var once sync.Once

	client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			assert.NoError(t, args.Get(0).(context.Context).Err())
			once.Do(func() { close(started) })
		}).
		WaitUntil(release).
		Return(minio.UploadInfo{}, nil)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Export(firstCtx)
		firstErr <- err
	}()

	<-started
	var second *Result
	var secondErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		second, secondErr = svc.Export(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	<-done
	require.NoError(t, secondErr)
	require.NotNil(t, second)
	assert.Equal(t, "snapshots/catalog-1718409600000000000-abcd1234.json", second.Key)
	client.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestExport_KeysDifferWithinSameSecond(t *testing.T) {
	svc, client, _ := setupService(t)
	svc.newID = snapshotID

	var keys []string
	client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	client.On("PutObject", mock.Anything, "catalog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(2)) }).
		Return(minio.UploadInfo{}, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Export(context.Background())
		require.NoError(t, err)
	}

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
	for _, k := range keys {
		assert.True(t, validName(strings.TrimPrefix(k, "snapshots/")), k)
	}
}

func TestList(t *testing.T) {
	svc, client, _ := setupService(t)

	client.On("ListObjects", mock.Anything, "catalog", minio.ListObjectsOptions{Prefix: "snapshots/catalog-", Recursive: true}).
		Return(mocks.Objects(
			minio.ObjectInfo{Key: "snapshots/catalog-100.json", Size: 10},
			minio.ObjectInfo{Key: "snapshots/catalog-200.json", Size: 20},
			minio.ObjectInfo{Key: "snapshots/catalog-200.json.tmp", Size: 1},
		))

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "snapshots/catalog-200.json", items[0].Key)
	assert.Equal(t, "snapshots/catalog-100.json", items[1].Key)
}

func TestList_Error(t *testing.T) {
	svc, client, _ := setupService(t)

	client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(mocks.Objects(minio.ObjectInfo{Err: assert.AnError}))

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRead(t *testing.T) {
	svc, client, _ := setupService(t)

	t.Run("Invalid name", func(t *testing.T) {
		_, err := svc.Read(context.Background(), "../secrets.json")
		assert.ErrorIs(t, err, catalog.ErrBadRequest)
	})

	t.Run("Missing object", func(t *testing.T) {
		client.On("GetObject", mock.Anything, "catalog", "snapshots/catalog-1.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := svc.Read(context.Background(), "catalog-1.json")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

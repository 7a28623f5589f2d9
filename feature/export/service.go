package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"movies-app/core/reconcile"
	"movies-app/core/storage"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	snapshotPrefix = "catalog-"
	snapshotExt    = ".json"

	// exportTimeout bounds a shared export run, which outlives its callers.
	exportTimeout = 2 * time.Minute
)

// Snapshot is the exported state of the whole catalog.
type Snapshot struct {
	ExportedAt time.Time          `json:"exportedAt"`
	Movies     []models.MovieDto  `json:"movies"`
	Artists    []models.ArtistDto `json:"artists"`
	Links      []reconcile.Link   `json:"links"`
}

// Result describes a stored snapshot.
type Result struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	Movies     int       `json:"movies"`
	Artists    int       `json:"artists"`
	Links      int       `json:"links"`
	ExportedAt time.Time `json:"exportedAt"`
}

// ObjectInfo is a snapshot listed from the bucket.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// Service writes catalog snapshots to object storage.
type Service struct {
	client storage.Client
	bucket string
	region string
	prefix string
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
	sf     singleflight.Group
}

// NewService creates a new export service.
func NewService(client storage.Client, cfg storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: strings.Trim(cfg.ExportPrefix, "/"),
		db:     db,
		logger: logger,
		now:    time.Now,
		newID:  snapshotID,
	}
}

// Export stores a snapshot of the catalog. Concurrent calls share one run
// and receive the same result. The run is detached from ctx so that one
// caller giving up does not fail the others; ctx only bounds the wait.
func (s *Service) Export(ctx context.Context) (*Result, error) {
	ch := s.sf.DoChan("export", func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exportTimeout)
		defer cancel()
		return s.export(runCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("Export coalesced with a running export")
		}
		return res.Val.(*Result), nil
	}
}

func (s *Service) export(ctx context.Context) (*Result, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return nil, err
	}

	// Nanoseconds keep keys ordered by time; the id separates runs in the same instant.
	key := s.objectKey(fmt.Sprintf("%s%d-%s%s", snapshotPrefix, snap.ExportedAt.UnixNano(), s.newID(), snapshotExt))
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}

	res := &Result{
		Key:        key,
		Size:       int64(len(data)),
		Movies:     len(snap.Movies),
		Artists:    len(snap.Artists),
		Links:      len(snap.Links),
		ExportedAt: snap.ExportedAt,
	}
	s.logger.Info("Catalog exported",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("movies", res.Movies),
		zap.Int("artists", res.Artists),
		zap.Int("links", res.Links),
	)
	return res, nil
}

// Snapshot reads the catalog in a single transaction so links always refer
// to movies and artists of the same snapshot.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{ExportedAt: s.now().UTC()}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var movies []models.Movie
		if err := tx.Preload("MoviesArtists").Order("id").Find(&movies).Error; err != nil {
			return fmt.Errorf("failed to load movies: %w", err)
		}
		var artists []models.Artist
		if err := tx.Preload("MoviesArtists").Order("id").Find(&artists).Error; err != nil {
			return fmt.Errorf("failed to load artists: %w", err)
		}
		links, err := catalog.NewLinkStore(tx).All(ctx)
		if err != nil {
			return fmt.Errorf("failed to load links: %w", err)
		}

		snap.Movies = make([]models.MovieDto, 0, len(movies))
		for i := range movies {
			snap.Movies = append(snap.Movies, models.ToMovieDto(&movies[i]))
		}
		snap.Artists = make([]models.ArtistDto, 0, len(artists))
		for i := range artists {
			snap.Artists = append(snap.Artists, models.ToArtistDto(&artists[i]))
		}
		snap.Links = links
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// List returns the stored snapshots, newest first.
func (s *Service) List(ctx context.Context) ([]ObjectInfo, error) {
	opts := minio.ListObjectsOptions{Prefix: s.objectKey(snapshotPrefix), Recursive: true}

	out := []ObjectInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, snapshotExt) {
			continue
		}
		out = append(out, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}

// Read downloads and decodes one snapshot by file name.
func (s *Service) Read(ctx context.Context, name string) (*Snapshot, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: invalid snapshot name %q", catalog.ErrBadRequest, name)
	}
	key := s.objectKey(name)

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.objectError(key, err)
	}
	defer obj.Close()

	var snap Snapshot
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		return nil, s.objectError(key, err)
	}
	return &snap, nil
}

func (s *Service) objectKey(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *Service) objectError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("snapshot %s: %w", key, catalog.ErrNotFound)
	}
	return fmt.Errorf("failed to read snapshot %s: %w", key, err)
}

func snapshotID() string {
	return uuid.NewString()[:8]
}

func validName(name string) bool {
	return strings.HasPrefix(name, snapshotPrefix) &&
		strings.HasSuffix(name, snapshotExt) &&
		!strings.ContainsAny(name, `/\`)
}

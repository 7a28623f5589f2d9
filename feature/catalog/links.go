package catalog

import (
	"context"
	"errors"
	"fmt"

	"movies-app/core/reconcile"
	"movies-app/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertBatchSize bounds the rows of a single INSERT statement.
const insertBatchSize = 100

// LinkStore writes movies_artists rows through GORM.
// It never opens or commits a transaction of its own; pass the caller's tx.
type LinkStore struct {
	db *gorm.DB
}

// NewLinkStore creates a link store bound to db, normally a transaction handle.
func NewLinkStore(db *gorm.DB) *LinkStore {
	return &LinkStore{db: db}
}

// InsertLink adds one join row.
func (s *LinkStore) InsertLink(ctx context.Context, link reconcile.Link) error {
	return s.InsertLinks(ctx, []reconcile.Link{link})
}

// InsertLinks adds join rows in batches. An existing row means another writer
// got there first and is reported as reconcile.ErrInconsistentState.
func (s *LinkStore) InsertLinks(ctx context.Context, links []reconcile.Link) error {
	if len(links) == 0 {
		return nil
	}

	rows := make([]models.MovieArtist, 0, len(links))
	for _, l := range links {
		rows = append(rows, models.MovieArtist{MovieID: l.MovieID, ArtistID: l.ArtistID})
	}

	err := s.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(&rows, insertBatchSize).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: link already exists", reconcile.ErrInconsistentState)
	}
	return err
}

// RemoveLink deletes exactly one join row. Zero affected rows is reported as
// reconcile.ErrInconsistentState.
func (s *LinkStore) RemoveLink(ctx context.Context, link reconcile.Link) error {
	res := s.db.WithContext(ctx).
		Where("movie_id = ? AND artist_id = ?", link.MovieID, link.ArtistID).
		Delete(&models.MovieArtist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: link not found", reconcile.ErrInconsistentState)
	}
	return nil
}

// RemoveAll deletes every join row of one owner and returns the count.
// It is the first half of a cascading owner delete.
func (s *LinkStore) RemoveAll(ctx context.Context, role reconcile.Role, ownerID int) (int64, error) {
	column := "movie_id"
	if role == reconcile.RoleArtist {
		column = "artist_id"
	}
	res := s.db.WithContext(ctx).Where(column+" = ?", ownerID).Delete(&models.MovieArtist{})
	return res.RowsAffected, res.Error
}

// All returns every join row ordered by movie then artist.
func (s *LinkStore) All(ctx context.Context) ([]reconcile.Link, error) {
	var rows []models.MovieArtist
	if err := s.db.WithContext(ctx).Order("movie_id, artist_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toLinks(rows), nil
}

package checks

import (
	"context"
	"fmt"

	"movies-app/core/reconcile"
	"movies-app/feature/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrphanLink is a join row pointing at a movie or artist that no longer exists.
type OrphanLink struct {
	MovieID       int  `json:"movie_id"`
	ArtistID      int  `json:"artist_id"`
	MissingMovie  bool `json:"missing_movie"`
	MissingArtist bool `json:"missing_artist"`
}

// CheckLinks returns every orphaned join row, ordered by movie then artist.
func CheckLinks(ctx context.Context, db *gorm.DB) ([]OrphanLink, error) {
	type row struct {
		MovieID  int  `gorm:"column:movie_id"`
		ArtistID int  `gorm:"column:artist_id"`
		MID      *int `gorm:"column:m_id"`
		AID      *int `gorm:"column:a_id"`
	}

	var rows []row
	err := db.WithContext(ctx).
		Table("movies_artists AS ma").
		Select("ma.movie_id AS movie_id, ma.artist_id AS artist_id, m.id AS m_id, a.id AS a_id").
		Joins("LEFT JOIN movies m ON m.id = ma.movie_id").
		Joins("LEFT JOIN artists a ON a.id = ma.artist_id").
		Where("m.id IS NULL OR a.id IS NULL").
		Order("ma.movie_id, ma.artist_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan join rows: %w", err)
	}

	orphans := make([]OrphanLink, 0, len(rows))
	for _, r := range rows {
		orphans = append(orphans, OrphanLink{
			MovieID:       r.MovieID,
			ArtistID:      r.ArtistID,
			MissingMovie:  r.MID == nil,
			MissingArtist: r.AID == nil,
		})
	}
	return orphans, nil
}

// FixLinks deletes the given orphaned join rows in one transaction.
func FixLinks(ctx context.Context, db *gorm.DB, logger *zap.Logger, orphans []OrphanLink) error {
	if len(orphans) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := catalog.NewLinkStore(tx)
		for _, o := range orphans {
			link := reconcile.Link{MovieID: o.MovieID, ArtistID: o.ArtistID}
			if err := store.RemoveLink(ctx, link); err != nil {
				logger.Error("Failed to remove orphaned link", zap.Int("movie_id", o.MovieID), zap.Int("artist_id", o.ArtistID), zap.Error(err))
				return err
			}
			logger.Info("Removed orphaned link", zap.Int("movie_id", o.MovieID), zap.Int("artist_id", o.ArtistID))
		}
		return nil
	})
}

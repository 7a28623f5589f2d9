package catalog

import (
	"context"

	"movies-app/core/reconcile"
	"movies-app/feature/catalog/models"

	"gorm.io/gorm"
)

// MovieOwner adapts a movie and its loaded join rows to the reconciler.
// Its candidate universe is every artist.
type MovieOwner struct {
	movie *models.Movie
}

// NewMovieOwner wraps m, which must have MoviesArtists loaded.
func NewMovieOwner(m *models.Movie) *MovieOwner {
	return &MovieOwner{movie: m}
}

func (o *MovieOwner) Role() reconcile.Role { return reconcile.RoleMovie }
func (o *MovieOwner) OwnerID() int         { return o.movie.ID }

func (o *MovieOwner) Links() []reconcile.Link {
	return toLinks(o.movie.MoviesArtists)
}

// LoadUniverse returns all artist ids.
func (o *MovieOwner) LoadUniverse(ctx context.Context, db *gorm.DB) ([]int, error) {
	var ids []int
	err := db.WithContext(ctx).Model(&models.Artist{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// ArtistOwner adapts an artist and its loaded join rows to the reconciler.
// Its candidate universe is every movie.
type ArtistOwner struct {
	artist *models.Artist
}

// NewArtistOwner wraps a, which must have MoviesArtists loaded.
func NewArtistOwner(a *models.Artist) *ArtistOwner {
	return &ArtistOwner{artist: a}
}

func (o *ArtistOwner) Role() reconcile.Role { return reconcile.RoleArtist }
func (o *ArtistOwner) OwnerID() int         { return o.artist.ID }

func (o *ArtistOwner) Links() []reconcile.Link {
	return toLinks(o.artist.MoviesArtists)
}

// LoadUniverse returns all movie ids.
func (o *ArtistOwner) LoadUniverse(ctx context.Context, db *gorm.DB) ([]int, error) {
	var ids []int
	err := db.WithContext(ctx).Model(&models.Movie{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func toLinks(rows []models.MovieArtist) []reconcile.Link {
	links := make([]reconcile.Link, 0, len(rows))
	for _, r := range rows {
		links = append(links, reconcile.Link{MovieID: r.MovieID, ArtistID: r.ArtistID})
	}
	return links
}

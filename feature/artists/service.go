package artists

import (
	"context"
	"errors"
	"fmt"

	"movies-app/core/reconcile"
	"movies-app/feature/catalog"
	"movies-app/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles artist operations. An artist owns its movie links the same
// way a movie owns its artist links.
type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	validator *catalog.Validator
	opts      reconcile.Options
}

// NewService creates a new artist service.
func NewService(db *gorm.DB, logger *zap.Logger, validator *catalog.Validator, opts reconcile.Options) *Service {
	return &Service{
		db:        db,
		logger:    logger,
		validator: validator,
		opts:      opts,
	}
}

// ListArtists returns all artists with their linked movie ids.
func (s *Service) ListArtists(ctx context.Context) ([]models.ArtistDto, error) {
	var artists []models.Artist
	if err := s.db.WithContext(ctx).Preload("MoviesArtists").Order("id").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	out := make([]models.ArtistDto, 0, len(artists))
	for i := range artists {
		out = append(out, models.ToArtistDto(&artists[i]))
	}
	return out, nil
}

// ListArtistViews returns all artists with the titles of their movies.
func (s *Service) ListArtistViews(ctx context.Context) ([]models.ArtistView, error) {
	var artists []models.Artist
	if err := s.db.WithContext(ctx).Preload("MoviesArtists.Movie").Order("id").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	out := make([]models.ArtistView, 0, len(artists))
	for i := range artists {
		out = append(out, models.ToArtistView(&artists[i]))
	}
	return out, nil
}

// GetArtist looks an artist up by id, with linked movie ids when detailed is set.
func (s *Service) GetArtist(ctx context.Context, id int, detailed bool) (*models.ArtistDto, error) {
	var preload []string
	if detailed {
		preload = append(preload, "MoviesArtists")
	}

	artist, err := findArtist(s.db.WithContext(ctx), id, preload...)
	if err != nil {
		return nil, err
	}
	dto := models.ToArtistDto(artist)
	return &dto, nil
}

// GetArtistView returns the view model of one artist.
func (s *Service) GetArtistView(ctx context.Context, id int) (*models.ArtistView, error) {
	artist, err := findArtist(s.db.WithContext(ctx), id, "MoviesArtists.Movie")
	if err != nil {
		return nil, err
	}
	view := models.ToArtistView(artist)
	return &view, nil
}

// AddArtist validates and stores a new artist, then links it to the selected movies.
func (s *Service) AddArtist(ctx context.Context, dto models.ArtistDto) (*models.ArtistDto, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	var out *models.ArtistDto
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist := models.ArtistFromDto(dto)
		if err := tx.Omit(clause.Associations).Create(&artist).Error; err != nil {
			return fmt.Errorf("failed to create artist: %w", err)
		}

		if _, err := s.reconcile(ctx, tx, &artist, dto.MovieIDs, s.opts); err != nil {
			return err
		}

		saved, err := findArtist(tx, artist.ID, "MoviesArtists")
		if err != nil {
			return err
		}
		d := models.ToArtistDto(saved)
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Artist created", zap.Int("artist_id", out.ID), zap.Ints("movie_ids", out.MovieIDs))
	return out, nil
}

// UpdateArtist overwrites the artist's fields and reconciles its movie links
// against dto.MovieIDs. A nil MovieIDs removes every link.
func (s *Service) UpdateArtist(ctx context.Context, id int, dto models.ArtistDto) (*models.ArtistDto, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	var out *models.ArtistDto
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist, err := findArtist(tx, id, "MoviesArtists")
		if err != nil {
			return err
		}

		models.ApplyArtistDto(artist, dto)
		err = tx.Model(&models.Artist{ID: artist.ID}).Updates(map[string]any{
			"first_name": artist.FirstName,
			"last_name":  artist.LastName,
			"birthday":   artist.Birthday,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update artist %d: %w", id, err)
		}

		if _, err := s.reconcile(ctx, tx, artist, dto.MovieIDs, s.opts); err != nil {
			return err
		}

		saved, err := findArtist(tx, id, "MoviesArtists")
		if err != nil {
			return err
		}
		d := models.ToArtistDto(saved)
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteArtist removes an artist and every join row referencing it.
func (s *Service) DeleteArtist(ctx context.Context, id int) error {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findArtist(tx, id); err != nil {
			return err
		}

		n, err := catalog.NewLinkStore(tx).RemoveAll(ctx, reconcile.RoleArtist, id)
		if err != nil {
			return fmt.Errorf("failed to remove links of artist %d: %w", id, err)
		}
		removed = n

		if err := tx.Delete(&models.Artist{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete artist %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("Artist with id %d has been deleted", id), zap.Int64("links_removed", removed))
	return nil
}

// ReconcileMovies reconciles the movie links of an existing artist. With
// dryRun set the plan is computed but not applied.
func (s *Service) ReconcileMovies(ctx context.Context, id int, target []int, dryRun bool) (*reconcile.Plan, error) {
	opts := s.opts
	opts.DryRun = dryRun

	var plan *reconcile.Plan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist, err := findArtist(tx, id, "MoviesArtists")
		if err != nil {
			return err
		}

		plan, err = s.reconcile(ctx, tx, artist, target, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// MovieOptions returns every movie as a checkbox option, marking those
// linked to artistID. A zero artistID yields the options of a new artist.
func (s *Service) MovieOptions(ctx context.Context, artistID int) ([]models.Option, error) {
	db := s.db.WithContext(ctx)

	var assigned []int
	if artistID != 0 {
		artist, err := findArtist(db, artistID, "MoviesArtists")
		if err != nil {
			return nil, err
		}
		assigned = models.ToArtistDto(artist).MovieIDs
	}

	var movies []models.Movie
	if err := db.Order("id").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	candidates := make([]models.Linked, 0, len(movies))
	for _, m := range movies {
		candidates = append(candidates, models.Linked{ID: m.ID, Name: m.Title})
	}
	return models.BuildOptions(candidates, assigned), nil
}

func (s *Service) reconcile(ctx context.Context, tx *gorm.DB, artist *models.Artist, target []int, opts reconcile.Options) (*reconcile.Plan, error) {
	plan, err := reconcile.ReconcileAdapter(ctx, catalog.NewArtistOwner(artist), target, tx, catalog.NewLinkStore(tx), opts)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Reconciled artist movies", append(catalog.PlanFields(plan), zap.Bool("dry_run", opts.DryRun))...)
	return plan, nil
}

func findArtist(db *gorm.DB, id int, preload ...string) (*models.Artist, error) {
	q := db
	for _, p := range preload {
		q = q.Preload(p)
	}

	var artist models.Artist
	if err := q.First(&artist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NotFound("artist", id)
		}
		return nil, fmt.Errorf("failed to load artist %d: %w", id, err)
	}
	return &artist, nil
}

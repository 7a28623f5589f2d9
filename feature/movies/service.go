package movies

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

// Service handles movie operations. Every mutation runs in one transaction
// together with the reconciliation of the movie's artist links.
type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	validator *catalog.Validator
	opts      reconcile.Options
}

// NewService creates a new movie service.
func NewService(db *gorm.DB, logger *zap.Logger, validator *catalog.Validator, opts reconcile.Options) *Service {
	return &Service{
		db:        db,
		logger:    logger,
		validator: validator,
		opts:      opts,
	}
}

// ListMovies returns all movies with their linked artist ids.
func (s *Service) ListMovies(ctx context.Context) ([]models.MovieDto, error) {
	var movies []models.Movie
	if err := s.db.WithContext(ctx).Preload("MoviesArtists").Order("id").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	out := make([]models.MovieDto, 0, len(movies))
	for i := range movies {
		out = append(out, models.ToMovieDto(&movies[i]))
	}
	return out, nil
}

// ListMovieViews returns all movies with the names of their artists.
func (s *Service) ListMovieViews(ctx context.Context) ([]models.MovieView, error) {
	var movies []models.Movie
	if err := s.db.WithContext(ctx).Preload("MoviesArtists.Artist").Order("id").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	out := make([]models.MovieView, 0, len(movies))
	for i := range movies {
		out = append(out, models.ToMovieView(&movies[i]))
	}
	return out, nil
}

// GetMovie looks a movie up by id. Linked artist ids are only loaded when
// detailed is set; otherwise ArtistIDs is empty.
func (s *Service) GetMovie(ctx context.Context, id int, detailed bool) (*models.MovieDto, error) {
	var preload []string
	if detailed {
		preload = append(preload, "MoviesArtists")
	}

	movie, err := findMovie(s.db.WithContext(ctx), id, preload...)
	if err != nil {
		return nil, err
	}
	dto := models.ToMovieDto(movie)
	return &dto, nil
}

// GetMovieView returns the view model of one movie.
func (s *Service) GetMovieView(ctx context.Context, id int) (*models.MovieView, error) {
	movie, err := findMovie(s.db.WithContext(ctx), id, "MoviesArtists.Artist")
	if err != nil {
		return nil, err
	}
	view := models.ToMovieView(movie)
	return &view, nil
}

// AddMovie validates and stores a new movie, then links it to the selected artists.
func (s *Service) AddMovie(ctx context.Context, dto models.MovieDto) (*models.MovieDto, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	var out *models.MovieDto
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movie := models.MovieFromDto(dto)
		if err := tx.Omit(clause.Associations).Create(&movie).Error; err != nil {
			return fmt.Errorf("failed to create movie: %w", err)
		}

		if _, err := s.reconcile(ctx, tx, &movie, dto.ArtistIDs, s.opts); err != nil {
			return err
		}

		saved, err := findMovie(tx, movie.ID, "MoviesArtists")
		if err != nil {
			return err
		}
		d := models.ToMovieDto(saved)
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Movie created", zap.Int("movie_id", out.ID), zap.Ints("artist_ids", out.ArtistIDs))
	return out, nil
}

// UpdateMovie overwrites the scalar fields of a movie and reconciles its
// artist links against dto.ArtistIDs. A nil ArtistIDs removes every link.
func (s *Service) UpdateMovie(ctx context.Context, id int, dto models.MovieDto) (*models.MovieDto, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	var out *models.MovieDto
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movie, err := findMovie(tx, id, "MoviesArtists")
		if err != nil {
			return err
		}

		models.ApplyMovieDto(movie, dto)
		err = tx.Model(&models.Movie{ID: movie.ID}).Updates(map[string]any{
			"title":        movie.Title,
			"release_date": movie.ReleaseDate,
			"genre":        movie.Genre,
			"price":        movie.Price,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update movie %d: %w", id, err)
		}

		if _, err := s.reconcile(ctx, tx, movie, dto.ArtistIDs, s.opts); err != nil {
			return err
		}

		saved, err := findMovie(tx, id, "MoviesArtists")
		if err != nil {
			return err
		}
		d := models.ToMovieDto(saved)
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMovie removes a movie and every join row referencing it.
func (s *Service) DeleteMovie(ctx context.Context, id int) error {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findMovie(tx, id); err != nil {
			return err
		}

		n, err := catalog.NewLinkStore(tx).RemoveAll(ctx, reconcile.RoleMovie, id)
		if err != nil {
			return fmt.Errorf("failed to remove links of movie %d: %w", id, err)
		}
		removed = n

		if err := tx.Delete(&models.Movie{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete movie %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("Movie with id %d has been deleted", id), zap.Int64("links_removed", removed))
	return nil
}

// ReconcileArtists reconciles the artist links of an existing movie without
// touching its scalar fields. With dryRun set the plan is computed but not applied.
func (s *Service) ReconcileArtists(ctx context.Context, id int, target []int, dryRun bool) (*reconcile.Plan, error) {
	opts := s.opts
	opts.DryRun = dryRun

	var plan *reconcile.Plan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movie, err := findMovie(tx, id, "MoviesArtists")
		if err != nil {
			return err
		}

		plan, err = s.reconcile(ctx, tx, movie, target, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ArtistOptions returns every artist as a checkbox option, marking those
// linked to movieID. A zero movieID yields the options of a new movie.
func (s *Service) ArtistOptions(ctx context.Context, movieID int) ([]models.Option, error) {
	db := s.db.WithContext(ctx)

	var assigned []int
	if movieID != 0 {
		movie, err := findMovie(db, movieID, "MoviesArtists")
		if err != nil {
			return nil, err
		}
		assigned = models.ToMovieDto(movie).ArtistIDs
	}

	var artists []models.Artist
	if err := db.Order("id").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}

	candidates := make([]models.Linked, 0, len(artists))
	for _, a := range artists {
		candidates = append(candidates, models.Linked{ID: a.ID, Name: a.FullName()})
	}
	return models.BuildOptions(candidates, assigned), nil
}

func (s *Service) reconcile(ctx context.Context, tx *gorm.DB, movie *models.Movie, target []int, opts reconcile.Options) (*reconcile.Plan, error) {
	plan, err := reconcile.ReconcileAdapter(ctx, catalog.NewMovieOwner(movie), target, tx, catalog.NewLinkStore(tx), opts)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Reconciled movie artists", append(catalog.PlanFields(plan), zap.Bool("dry_run", opts.DryRun))...)
	return plan, nil
}

func findMovie(db *gorm.DB, id int, preload ...string) (*models.Movie, error) {
	q := db
	for _, p := range preload {
		q = q.Preload(p)
	}

	var movie models.Movie
	if err := q.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NotFound("movie", id)
		}
		return nil, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	return &movie, nil
}

package movies

import (
	"movies-app/core/reconcile"
	"movies-app/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Movies feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, validator *catalog.Validator, opts reconcile.Options) *Feature {
	svc := NewService(db, logger, validator, opts)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "movies"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Service exposes the movie service to commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	f.handler.RegisterFormRoutes(app)
	return nil
}

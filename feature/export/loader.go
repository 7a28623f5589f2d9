package export

import (
	"movies-app/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new Export feature. It is disabled when no storage client is available.
func NewFeature(client storage.Client, cfg storage.Config, db *gorm.DB, logger *zap.Logger) *Feature {
	svc := NewService(client, cfg, db, logger)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: client != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "export"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Service exposes the export service to commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

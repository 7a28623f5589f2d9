package integrity

import (
	"context"
	"fmt"

	"movies-app/core/storage"
	"movies-app/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. client may be nil, in which
// case the storage check reports an error.
func NewService(client storage.Client, cfg storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// CheckSchema compares the catalog tables against the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckLinks returns the orphaned join rows.
func (s *Service) CheckLinks(ctx context.Context) ([]checks.OrphanLink, error) {
	return checks.CheckLinks(ctx, s.db)
}

// FixLinks deletes the given orphaned join rows.
func (s *Service) FixLinks(ctx context.Context, orphans []checks.OrphanLink) error {
	return checks.FixLinks(ctx, s.db, s.logger, orphans)
}

// CheckStorage reports on the snapshot bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return checks.CheckStorage(ctx, s.client, s.cfg.Bucket, s.cfg.ExportPrefix)
}

// FixStorage creates the snapshot bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("storage is not configured")
	}
	return checks.FixStorage(ctx, s.client, s.cfg.Bucket, s.cfg.Region, s.logger)
}

package catalog

import (
	"fmt"

	"movies-app/feature/catalog/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

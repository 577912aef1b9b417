package db

import (
	"fmt"

	"github.com/shopmetrics/schedconform/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.ConformanceRun{},
		&models.UnitStatus{},
		&models.NotScheduledMO{},
	}
}

// AutoMigrate creates or updates all run-history tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

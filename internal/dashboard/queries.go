package dashboard

import (
	"github.com/shopmetrics/schedconform/internal/models"
	"gorm.io/gorm"
)

// ListRuns returns the most recent runs, newest first.
func ListRuns(db *gorm.DB, limit int) ([]models.ConformanceRun, error) {
	var runs []models.ConformanceRun
	if err := db.Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// LatestRun returns the most recent run.
func LatestRun(db *gorm.DB) (*models.ConformanceRun, error) {
	var run models.ConformanceRun
	if err := db.Order("created_at DESC").First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// RunStatus returns a run's per-unit status rows, ordered by unit then
// insertion order so each unit's days read Monday first.
func RunStatus(db *gorm.DB, runID string) ([]models.UnitStatus, error) {
	var rows []models.UnitStatus
	if err := db.Where("run_id = ?", runID).
		Order("unit ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RunNotScheduled returns a run's off-plan tracking rows.
func RunNotScheduled(db *gorm.DB, runID string) ([]models.NotScheduledMO, error) {
	var rows []models.NotScheduledMO
	if err := db.Where("run_id = ?", runID).
		Order("unit ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

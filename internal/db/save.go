package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopmetrics/schedconform/internal/models"
	"github.com/shopmetrics/schedconform/internal/pipeline"
	"github.com/shopmetrics/schedconform/internal/workorder"
	"gorm.io/gorm"
)

// SaveRun persists a pipeline result as a new run with its status and
// not-scheduled rows, in one transaction. Returns the new run ID.
func SaveRun(gdb *gorm.DB, result *pipeline.Result, now time.Time) (string, error) {
	run := models.ConformanceRun{
		ID:        uuid.NewString(),
		Week:      result.Week,
		Weekday:   result.Weekday,
		CreatedAt: now,
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		for _, unit := range workorder.Units() {
			for _, row := range result.Status[unit] {
				if err := tx.Create(statusRow(run.ID, unit, row)).Error; err != nil {
					return err
				}
			}
			for _, tr := range result.NotScheduled[unit] {
				if err := tx.Create(notSchedRow(run.ID, unit, tr)).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("db: save run week %d %s: %w", result.Week, result.Weekday, err)
	}
	return run.ID, nil
}

func statusRow(runID, unit string, row pipeline.ProgressRow) *models.UnitStatus {
	s := &models.UnitStatus{
		RunID:   runID,
		Unit:    unit,
		Weekday: row.Weekday,
		MOCount: row.MOCount,
		Hours:   row.Hours,
	}
	if row.HasProgress {
		s.MOsComplete = numericPtr(row.MOsComplete)
		s.HoursComplete = numericPtr(row.HoursComplete)
		s.PctMOsComplete = numericPtr(row.PctMOsComplete)
		s.PctHrsComplete = numericPtr(row.PctHrsComplete)
	}
	return s
}

func notSchedRow(runID, unit string, tr pipeline.TrackingRecord) *models.NotScheduledMO {
	return &models.NotScheduledMO{
		RunID:       runID,
		Unit:        unit,
		Order:       tr.Order,
		Description: tr.Description,
		Item:        tr.Item,
		Facility:    tr.Facility,
		InitialQty:  tr.InitialQty,
		InitialHrs:  tr.InitialHrs,
		EndQty:      tr.EndQty,
		EndHrs:      tr.EndHrs,
		QtyComplete: tr.QtyComplete,
		HrsComplete: tr.HrsComplete,
	}
}

// numericPtr returns nil for NaN and Inf so those persist as NULL.
func numericPtr(v float64) *float64 {
	if !pipeline.Numeric(v) {
		return nil
	}
	return &v
}

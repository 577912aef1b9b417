// Package models defines the GORM models for persisted run history.
package models

import "time"

// ConformanceRun records one pipeline execution: which week and weekday it
// rolled up, and when it ran.
type ConformanceRun struct {
	ID        string `gorm:"primaryKey;size:36"`
	Week      int    `gorm:"index"`
	Weekday   string `gorm:"size:16"`
	CreatedAt time.Time

	Status       []UnitStatus     `gorm:"foreignKey:RunID"`
	NotScheduled []NotScheduledMO `gorm:"foreignKey:RunID"`
}

// UnitStatus is one row of the daily status table for one unit. The derived
// columns are pointers so that non-numeric values (a zero Monday baseline)
// persist as NULL.
type UnitStatus struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	RunID   string `gorm:"size:36;index"`
	Unit    string `gorm:"size:16;index"`
	Weekday string `gorm:"size:16"`
	MOCount int
	Hours   float64

	MOsComplete    *float64
	HoursComplete  *float64
	PctMOsComplete *float64
	PctHrsComplete *float64
}

// NotScheduledMO is one tracked off-plan work order as of the run's day.
type NotScheduledMO struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	RunID       string `gorm:"size:36;index"`
	Unit        string `gorm:"size:16;index"`
	Order       string `gorm:"column:order_no;size:32"`
	Description string
	Item        string `gorm:"size:64"`
	Facility    string `gorm:"size:16"`

	InitialQty  float64
	InitialHrs  float64
	EndQty      float64
	EndHrs      float64
	QtyComplete float64
	HrsComplete float64
}

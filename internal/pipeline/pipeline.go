package pipeline

import (
	"fmt"
	"time"

	"github.com/shopmetrics/schedconform/internal/ingest"
	"github.com/shopmetrics/schedconform/internal/workorder"
)

// Result is the complete output of one week's rollup, consumed by the
// report writers, chart renderer, database sink, and Slack summary.
type Result struct {
	Week    int
	Weekday string // current weekday, the last one processed

	// Status holds each unit's day-by-day series with derived progress
	// metrics.
	Status map[string][]ProgressRow

	// MondayScheduled holds each unit's baseline scheduled subset, kept
	// verbatim for the standalone Monday report.
	MondayScheduled map[string][]workorder.Record

	// FridayScheduled holds Friday's still-incomplete scheduled orders per
	// unit. Populated only at end of week (weekday index >= 5), when the
	// reasons workbook is generated.
	FridayScheduled map[string][]workorder.Record

	// NotScheduled holds the per-unit tracking records for work done
	// outside the Monday plan.
	NotScheduled map[string][]TrackingRecord
}

// Execute runs the full rollup over the week's snapshots, which must cover
// Monday through weekday in order (ingest.LoadWeek produces exactly that).
// now supplies the week window and "today" for stale-completion checks.
func Execute(week int, weekday string, snapshots []ingest.Snapshot, now time.Time) (*Result, error) {
	idx, err := workorder.WeekdayIndex(weekday)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 || snapshots[len(snapshots)-1].Weekday != weekday {
		return nil, fmt.Errorf("pipeline: snapshots do not reach current weekday %s", weekday)
	}

	run := NewRun(week, now)
	for _, snap := range snapshots {
		if err := run.ProcessDay(snap.Weekday, snap.Records); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Week:            week,
		Weekday:         weekday,
		Status:          make(map[string][]ProgressRow, len(workorder.Units())),
		MondayScheduled: run.Scheduled("Monday"),
		NotScheduled:    run.NotScheduledProgress(),
	}
	for _, unit := range workorder.Units() {
		result.Status[unit] = CalcProgress(run.Status(unit))
	}
	if idx >= 5 {
		result.FridayScheduled = run.Scheduled("Friday")
	}
	return result, nil
}

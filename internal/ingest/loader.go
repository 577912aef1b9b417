package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopmetrics/schedconform/internal/workorder"
)

// Snapshot is one weekday's normalized export.
type Snapshot struct {
	Weekday string
	Records []workorder.Record
}

// FileName returns the export file name the scheduler drops daily, e.g.
// "Monday Sched Conform Wk9.csv".
func FileName(weekday string, week int) string {
	return fmt.Sprintf("%s Sched Conform Wk%d.csv", weekday, week)
}

// LoadDay reads and normalizes one weekday's export from dir.
func LoadDay(dir, weekday string, week int) ([]workorder.Record, error) {
	path := filepath.Join(dir, FileName(weekday, week))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("ingest: %s: missing header row", path)
	}

	records, err := Normalize(all[0], all[1:])
	if err != nil {
		return nil, fmt.Errorf("ingest: %s: %w", path, err)
	}
	return records, nil
}

// LoadWeek loads every weekday's export from Monday up to and including
// currentWeekday, in weekday order. Every file must exist: later-day
// processing depends on all earlier days, so a gap is fatal.
func LoadWeek(dir string, week int, currentWeekday string) ([]Snapshot, error) {
	last, err := workorder.WeekdayIndex(currentWeekday)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	snapshots := make([]Snapshot, 0, last+1)
	for i := 0; i <= last; i++ {
		weekday := workorder.Weekdays[i]
		records, err := LoadDay(dir, weekday, week)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, Snapshot{Weekday: weekday, Records: records})
	}
	return snapshots, nil
}

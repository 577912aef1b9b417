package pipeline

import (
	"math"

	"github.com/samber/lo"
)

// ProgressRow is a StatusEntry augmented with cumulative completion
// metrics relative to Monday's baseline. When the series is too short to
// derive progress, HasProgress is false and the derived fields are zero.
type ProgressRow struct {
	StatusEntry
	MOsComplete    float64
	HoursComplete  float64
	PctMOsComplete float64
	PctHrsComplete float64
	HasProgress    bool
}

// CalcProgress derives completed counts, hours, and their percentages of
// the Monday baseline for a unit's status series. A series of one entry (or
// none) comes back unchanged: progress is undefined from a single point.
//
// The day-over-day delta deliberately compares each entry to the NEXT one
// (today minus tomorrow) with the cumulative sum landing on the following
// row, reproducing the established report's arithmetic exactly. The net
// effect is completed[i] relative to Monday with completed[0] = 0.
func CalcProgress(series []StatusEntry) []ProgressRow {
	rows := lo.Map(series, func(e StatusEntry, _ int) ProgressRow {
		return ProgressRow{StatusEntry: e}
	})
	if len(rows) <= 1 {
		return rows
	}

	moDelta := make([]float64, len(rows)-1)
	hrDelta := make([]float64, len(rows)-1)
	for i := 0; i < len(rows)-1; i++ {
		moDelta[i] = float64(rows[i].MOCount - rows[i+1].MOCount)
		hrDelta[i] = rows[i].Hours - rows[i+1].Hours
	}

	baseMOs := float64(rows[0].MOCount)
	baseHrs := rows[0].Hours

	var cumMOs, cumHrs float64
	for i := range rows {
		if i > 0 {
			cumMOs += moDelta[i-1]
			cumHrs += hrDelta[i-1]
		}
		rows[i].MOsComplete = cumMOs
		rows[i].HoursComplete = cumHrs
		rows[i].PctMOsComplete = round2(cumMOs / baseMOs * 100)
		rows[i].PctHrsComplete = round2(cumHrs / baseHrs * 100)
		rows[i].HasProgress = true
	}
	return rows
}

// round2 rounds to two decimal places. NaN and ±Inf pass through: a zero
// Monday baseline yields a non-numeric percent, which downstream writers
// render as an empty cell.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Numeric reports whether a derived value is renderable as a number.
func Numeric(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

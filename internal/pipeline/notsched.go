package pipeline

import (
	"github.com/shopmetrics/schedconform/internal/workorder"
)

// TrackingRecord follows one not-scheduled order across the week: the
// quantity and hours remaining when it first appeared, the values on the
// final processed day, and the difference between them. Orders that vanish
// from the exports get zero end values and count as fully resolved.
// Completions are not clamped: a quantity that grew mid-week reports as a
// negative completion.
type TrackingRecord struct {
	Order       string
	Description string
	Item        string
	Facility    string
	InitialQty  float64
	InitialHrs  float64
	EndQty      float64
	EndHrs      float64
	QtyComplete float64
	HrsComplete float64
}

// NotScheduledProgress computes per-unit tracking records from the
// not-scheduled subsets of every day processed so far. Initial values come
// from the first chronological appearance of each (order, description);
// end values come from the last processed day.
func (r *Run) NotScheduledProgress() map[string][]TrackingRecord {
	var accumulated []TrackingRecord
	seen := map[workorder.Key]bool{}
	for _, day := range r.notSched {
		for _, rec := range day.records {
			key := rec.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			accumulated = append(accumulated, TrackingRecord{
				Order:       rec.Order,
				Description: rec.Description,
				Item:        rec.Item,
				Facility:    rec.Facility,
				InitialQty:  rec.QtyRemMO,
				InitialHrs:  rec.MachHrsRem,
			})
		}
	}

	ends := map[workorder.Key]workorder.Record{}
	if len(r.notSched) > 0 {
		for _, rec := range r.notSched[len(r.notSched)-1].records {
			ends[rec.Key()] = rec
		}
	}

	out := make(map[string][]TrackingRecord, len(workorder.Units()))
	for _, unit := range workorder.Units() {
		out[unit] = []TrackingRecord{}
	}
	for _, tr := range accumulated {
		key := workorder.Key{Order: tr.Order, Description: tr.Description}
		if end, ok := ends[key]; ok {
			tr.EndQty = end.QtyRemMO
			tr.EndHrs = end.MachHrsRem
		}
		tr.QtyComplete = tr.InitialQty - tr.EndQty
		tr.HrsComplete = tr.InitialHrs - tr.EndHrs

		unit := workorder.UnitFor(tr.Facility)
		if unit == "" {
			continue
		}
		out[unit] = append(out[unit], tr)
	}
	return out
}

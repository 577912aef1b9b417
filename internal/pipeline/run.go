package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shopmetrics/schedconform/internal/workorder"
)

// ErrBaselineMissing is returned when a later weekday is processed before
// Monday has established the week's baseline order set.
var ErrBaselineMissing = errors.New("pipeline: Monday baseline not established")

// StatusEntry is one day's point in a unit's status series: how many
// scheduled orders remain incomplete and the machine hours still on them.
type StatusEntry struct {
	Weekday string
	MOCount int
	Hours   float64
}

// Run owns all state accumulated across one week's processing: the Monday
// baseline, per-unit status series, per-day scheduled subsets, and the
// day-by-day not-scheduled subsets. A Run lives for a single invocation;
// nothing carries over between runs.
type Run struct {
	Week int

	start time.Time
	end   time.Time
	today time.Time

	processed      []string
	baselineOrders map[string]bool            // order IDs scheduled on Monday, all units
	baseline       map[string][]workorder.Key // per-unit Monday (order, description) lists
	scheduled      map[string]map[string][]workorder.Record
	status         map[string][]StatusEntry
	notSched       []daySubset
}

type daySubset struct {
	weekday string
	records []workorder.Record
}

// NewRun creates a run for the given week number. Week bounds and "today"
// are derived from now, which tests inject.
func NewRun(week int, now time.Time) *Run {
	start, end := Bounds(now)
	return &Run{
		Week:           week,
		start:          start,
		end:            end,
		today:          dateOnly(now),
		baselineOrders: map[string]bool{},
		baseline:       map[string][]workorder.Key{},
		scheduled:      map[string]map[string][]workorder.Record{},
		status:         map[string][]StatusEntry{},
	}
}

// ProcessDay classifies one weekday's normalized export and folds it into
// the run state. Days must be processed exactly once each, in weekday
// order starting from Monday; anything else is a precondition violation.
func (r *Run) ProcessDay(weekday string, records []workorder.Record) error {
	idx, err := workorder.WeekdayIndex(weekday)
	if err != nil {
		return err
	}
	if idx > 0 && len(r.baseline) == 0 {
		return fmt.Errorf("%w (processing %s)", ErrBaselineMissing, weekday)
	}
	if idx != len(r.processed) {
		return fmt.Errorf("pipeline: %s processed out of order, expected %s",
			weekday, workorder.Weekdays[len(r.processed)])
	}

	sched := r.scheduledSubset(weekday, records)

	byUnit := workorder.SplitByUnit(sched)
	day := make(map[string][]workorder.Record, len(byUnit))
	for _, unit := range workorder.Units() {
		subset := byUnit[unit]
		if weekday == "Monday" {
			r.baseline[unit] = lo.Map(subset, func(rec workorder.Record, _ int) workorder.Key {
				return rec.Key()
			})
		} else {
			subset = r.joinBaseline(unit, subset)
		}
		day[unit] = subset
		r.status[unit] = append(r.status[unit], StatusEntry{
			Weekday: weekday,
			MOCount: len(subset),
			Hours:   lo.SumBy(subset, func(rec workorder.Record) float64 { return rec.MachHrsRem }),
		})
	}
	r.scheduled[weekday] = day

	if weekday == "Monday" {
		for _, rec := range sched {
			r.baselineOrders[rec.Order] = true
		}
	}

	r.notSched = append(r.notSched, daySubset{
		weekday: weekday,
		records: r.notScheduledSubset(records),
	})

	r.processed = append(r.processed, weekday)
	slog.Debug("processed day",
		"weekday", weekday,
		"records", len(records),
		"scheduled", len(sched))
	return nil
}

// scheduledSubset selects the day's incomplete scheduled orders. Monday is
// additionally restricted to orders due within the week; its result defines
// the baseline every later day is joined against.
func (r *Run) scheduledSubset(weekday string, records []workorder.Record) []workorder.Record {
	subset := lo.Filter(records, func(rec workorder.Record, _ int) bool {
		return !rec.Completed() && rec.QtyRem > 0
	})
	if weekday == "Monday" {
		subset = lo.Filter(subset, func(rec workorder.Record, _ int) bool {
			return !rec.SchComp.IsZero() && !rec.SchComp.After(r.end)
		})
	}
	return subset
}

// joinBaseline inner-joins a unit's daily subset against its Monday list on
// (order, description), preserving the Monday ordering. Baseline orders
// absent from today's export are silently skipped: they completed or were
// pulled upstream.
func (r *Run) joinBaseline(unit string, subset []workorder.Record) []workorder.Record {
	today := lo.KeyBy(subset, func(rec workorder.Record) workorder.Key { return rec.Key() })
	joined := make([]workorder.Record, 0, len(r.baseline[unit]))
	for _, key := range r.baseline[unit] {
		if rec, ok := today[key]; ok {
			joined = append(joined, rec)
		}
	}
	return joined
}

// notScheduledSubset selects work happening outside the Monday plan: orders
// not in the baseline, with activity strictly inside the week window, and
// not already completed before today (stale closed orders reappear in the
// exports and must not count).
func (r *Run) notScheduledSubset(records []workorder.Record) []workorder.Record {
	return lo.Filter(records, func(rec workorder.Record, _ int) bool {
		if r.baselineOrders[rec.Order] {
			return false
		}
		if !(rec.LastActivity.After(r.start) && rec.LastActivity.Before(r.end)) {
			return false
		}
		if rec.Completed() && rec.ActComp.Before(r.today) {
			return false
		}
		return true
	})
}

// Status returns a unit's status series accumulated so far.
func (r *Run) Status(unit string) []StatusEntry {
	return r.status[unit]
}

// Scheduled returns the per-unit scheduled subsets recorded for a weekday,
// or nil if that day has not been processed.
func (r *Run) Scheduled(weekday string) map[string][]workorder.Record {
	return r.scheduled[weekday]
}

// Baseline returns a unit's frozen Monday (order, description) list.
func (r *Run) Baseline(unit string) []workorder.Key {
	return append([]workorder.Key(nil), r.baseline[unit]...)
}

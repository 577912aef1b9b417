// Package pipeline implements the daily schedule-conformance rollup: it
// classifies each weekday's export against the Monday baseline, accumulates
// per-unit status series, tracks not-scheduled work, and derives progress
// metrics for the week.
package pipeline

import "time"

// dateOnly truncates a time to midnight in its location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Bounds returns the week window containing t. The scheduling calendar
// runs Sunday to Sunday: start is the Sunday before t (a full week back
// when t itself is a Sunday), end is start plus seven days. Last-activity
// filtering is strict on both sides of this window.
func Bounds(t time.Time) (start, end time.Time) {
	d := dateOnly(t)
	// Days since the week's Sunday, counting Monday as day one.
	offset := (int(d.Weekday())+6)%7 + 1
	start = d.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 7)
	return start, end
}

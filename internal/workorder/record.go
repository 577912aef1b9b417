// Package workorder defines the typed work-order records produced by
// ingestion and the static facility/unit tables the pipeline partitions by.
package workorder

import "time"

// Record is one work-order operation row from a daily scheduling export,
// after normalization. Date fields use the zero time.Time as "not yet
// occurred"; actual dates in the exports are never year 1.
type Record struct {
	Order       string
	Description string
	Item        string
	Facility    string
	Dept        string

	QtyRem      float64 // operation-level quantity remaining
	QtyRemMO    float64 // order-level quantity remaining
	MachHrsRem  float64
	LaborHrsRem float64
	HoursRem    float64

	SchStart     time.Time
	ActStart     time.Time
	SchComp      time.Time
	ActComp      time.Time
	Due          time.Time
	LastActivity time.Time
}

// Key identifies a work order within a day's export. Order numbers repeat
// across operations; the (order, description) pair is the join key used
// against the Monday baseline.
type Key struct {
	Order       string
	Description string
}

// Key returns the record's (order, description) join key.
func (r Record) Key() Key {
	return Key{Order: r.Order, Description: r.Description}
}

// Completed reports whether the order has an actual completion date.
func (r Record) Completed() bool {
	return !r.ActComp.IsZero()
}

// dateLayouts are the two formats the scheduling export emits.
var dateLayouts = []string{"01/02/06", "01/02/2006"}

// ParseDate parses an export date in MM/DD/YY or MM/DD/YYYY form. A value
// matching neither layout (including the empty string) is a null date, not
// an error: several date columns are blank until the event occurs.
func ParseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a date in the export's four-digit-year form, or ""
// for a null date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02/2006")
}

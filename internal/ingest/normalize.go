// Package ingest loads raw daily scheduling exports and normalizes them
// into workorder records.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopmetrics/schedconform/internal/workorder"
)

// headerRenames maps raw export column headers to canonical names. The
// export tool's headers are fixed; this table is data, not configuration.
// Headers already in canonical form pass through untouched, which makes
// normalization idempotent.
var headerRenames = map[string]string{
	"Department":             "Dept",
	"Item Description":       "Description",
	"Start Date":             "Sch start",
	"Actual Start Date":      "Act start",
	"Complete Date":          "Sch comp",
	"Actual Completion Date": "Act comp",
	"MOP  QTY Remaining":     "Qty Rem",
	"MO Qty Remaining":       "Qty Rem MO",
	"Last Activity Date":     "Last activity",
	"Due date":               "Due",
	"Mach Hrs Remaining":     "Mach hrs rem",
	"Labor Hrs Remaining":    "Labor hrs rem",
}

// numericColumns must coerce cleanly after thousands separators are
// stripped. A bad value here is a hard ingestion error: it means the
// export itself is corrupt and the whole run must abort.
var numericColumns = []string{"Qty Rem", "Qty Rem MO", "Mach hrs rem", "Labor hrs rem", "Hours Remaining"}

// dateColumns parse under the two export date layouts; anything else
// becomes a null date.
var dateColumns = []string{"Sch start", "Act start", "Sch comp", "Act comp", "Due", "Last activity"}

// canonicalHeader maps a raw header to its canonical name.
func canonicalHeader(h string) string {
	if renamed, ok := headerRenames[h]; ok {
		return renamed
	}
	return h
}

// Normalize converts one day's raw export rows into workorder records:
// headers are renamed to canonical form, rows for untracked facilities are
// dropped, thousands separators are stripped, numeric columns are coerced
// (hard error) and date columns parsed (soft null).
func Normalize(headers []string, rows [][]string) ([]workorder.Record, error) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[canonicalHeader(strings.TrimSpace(h))] = i
	}

	cell := func(row []string, column string) string {
		i, ok := idx[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.ReplaceAll(strings.TrimSpace(row[i]), ",", "")
	}

	records := make([]workorder.Record, 0, len(rows))
	for n, row := range rows {
		facility := cell(row, "Facility")
		if !workorder.Tracked(facility) {
			continue
		}

		r := workorder.Record{
			Order:       cell(row, "Order"),
			Description: cell(row, "Description"),
			Item:        cell(row, "Item"),
			Facility:    facility,
			Dept:        cell(row, "Dept"),
		}

		numeric := map[string]*float64{
			"Qty Rem":         &r.QtyRem,
			"Qty Rem MO":      &r.QtyRemMO,
			"Mach hrs rem":    &r.MachHrsRem,
			"Labor hrs rem":   &r.LaborHrsRem,
			"Hours Remaining": &r.HoursRem,
		}
		for _, column := range numericColumns {
			value := cell(row, column)
			if value == "" {
				continue
			}
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("ingest: row %d: column %q: bad numeric value %q", n+1, column, value)
			}
			*numeric[column] = parsed
		}

		dates := map[string]*time.Time{
			"Sch start":     &r.SchStart,
			"Act start":     &r.ActStart,
			"Sch comp":      &r.SchComp,
			"Act comp":      &r.ActComp,
			"Due":           &r.Due,
			"Last activity": &r.LastActivity,
		}
		for _, column := range dateColumns {
			*dates[column] = workorder.ParseDate(cell(row, column))
		}

		records = append(records, r)
	}
	return records, nil
}

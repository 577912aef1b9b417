package report

import (
	"fmt"
	"path/filepath"

	"github.com/shopmetrics/schedconform/internal/pipeline"
	"github.com/shopmetrics/schedconform/internal/workorder"
	"github.com/xuri/excelize/v2"
)

// NotScheduledFileName returns the not-scheduled workbook name for a week.
func NotScheduledFileName(week int) string {
	return fmt.Sprintf("Not Scheduled MOs WK%d.xlsx", week)
}

// WriteNotScheduled writes the week's not-scheduled tracking workbook, one
// sheet per unit.
func WriteNotScheduled(dir string, week int, tracked map[string][]pipeline.TrackingRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := []interface{}{
		"MO", "Description", "Item", "Facility",
		"Initial Qty", "Initial Mach Hrs", "End Qty", "End Mach Hrs",
		"Qty Comp", "Mach Hrs Comp",
	}

	for i, unit := range workorder.Units() {
		if err := unitSheet(f, unit, i == 0); err != nil {
			return fmt.Errorf("report: sheet %s: %w", unit, err)
		}
		if err := setRow(f, unit, 1, headers); err != nil {
			return err
		}
		for j, tr := range tracked[unit] {
			row := []interface{}{
				tr.Order, tr.Description, tr.Item, tr.Facility,
				tr.InitialQty, tr.InitialHrs, tr.EndQty, tr.EndHrs,
				tr.QtyComplete, tr.HrsComplete,
			}
			if err := setRow(f, unit, j+2, row); err != nil {
				return err
			}
		}
		if err := fitColumns(f, unit); err != nil {
			return err
		}
	}

	path := filepath.Join(dir, NotScheduledFileName(week))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

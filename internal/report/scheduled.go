package report

import (
	"fmt"
	"path/filepath"

	"github.com/shopmetrics/schedconform/internal/workorder"
	"github.com/xuri/excelize/v2"
)

// WriteMondayScheduled writes one workbook per unit listing the orders in
// that unit's Monday baseline, the standalone "what was planned" report.
func WriteMondayScheduled(dir string, week int, scheduled map[string][]workorder.Record) error {
	for _, unit := range workorder.Units() {
		name := fmt.Sprintf("%s Monday Scheduled MOs WK%d.xlsx", unit, week)
		if err := writeMondayWorkbook(filepath.Join(dir, name), scheduled[unit]); err != nil {
			return err
		}
	}
	return nil
}

func writeMondayWorkbook(path string, records []workorder.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, []interface{}{"Order", "Item", "Description", "Mach hrs rem"}); err != nil {
		return err
	}
	for i, rec := range records {
		row := []interface{}{rec.Order, rec.Item, rec.Description, rec.MachHrsRem}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := fitColumns(f, sheet); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

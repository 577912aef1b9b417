package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("report: cell (%d,%d): %w", i+1, row, err)
		}
		if v == nil {
			continue
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("report: set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// fitColumns widens each column of a sheet to its longest rendered value
// plus padding, so reports open readable without manual resizing.
func fitColumns(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("report: read %s for sizing: %w", sheet, err)
	}
	widths := map[int]int{}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("report: column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, col, col, float64(width+2)); err != nil {
			return fmt.Errorf("report: size %s!%s: %w", sheet, col, err)
		}
	}
	return nil
}

// unitSheet ensures a sheet exists for a unit, reusing the default sheet
// for the first one so workbooks don't carry an empty "Sheet1".
func unitSheet(f *excelize.File, unit string, first bool) error {
	if first {
		return f.SetSheetName(f.GetSheetName(0), unit)
	}
	_, err := f.NewSheet(unit)
	return err
}

package report

import (
	"fmt"
	"path/filepath"

	"github.com/shopmetrics/schedconform/internal/pipeline"
	"github.com/shopmetrics/schedconform/internal/workorder"
	"github.com/xuri/excelize/v2"
)

// StatusFileName returns the status workbook name for a week.
func StatusFileName(week int) string {
	return fmt.Sprintf("Sch Conf Status WK%d.xlsx", week)
}

// WriteStatus writes the status workbook: one sheet per unit holding the
// day-by-day series and, once the week has more than one day, the derived
// completion columns. Non-numeric percents (zero Monday baseline) render
// as empty cells.
func WriteStatus(dir string, week int, status map[string][]pipeline.ProgressRow) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, unit := range workorder.Units() {
		if err := unitSheet(f, unit, i == 0); err != nil {
			return fmt.Errorf("report: sheet %s: %w", unit, err)
		}
		if err := writeStatusSheet(f, unit, status[unit]); err != nil {
			return err
		}
		if err := fitColumns(f, unit); err != nil {
			return err
		}
	}

	path := filepath.Join(dir, StatusFileName(week))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

func writeStatusSheet(f *excelize.File, sheet string, rows []pipeline.ProgressRow) error {
	derived := len(rows) > 0 && rows[0].HasProgress

	headers := []interface{}{"Weekday", "MO Count", "Hours"}
	if derived {
		headers = append(headers, "MOs Complete", "Hours Complete", "% MOs Complete", "% Hrs Complete")
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, row := range rows {
		values := []interface{}{row.Weekday, row.MOCount, row.Hours}
		if derived {
			values = append(values,
				row.MOsComplete,
				row.HoursComplete,
				numericCell(row.PctMOsComplete),
				numericCell(row.PctHrsComplete),
			)
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

// numericCell maps a non-numeric derived value to a blank cell.
func numericCell(x float64) interface{} {
	if !pipeline.Numeric(x) {
		return nil
	}
	return x
}

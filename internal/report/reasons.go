package report

import (
	"fmt"
	"path/filepath"

	"github.com/shopmetrics/schedconform/internal/workorder"
	"github.com/xuri/excelize/v2"
)

const (
	// Dropdown source ranges on the vocabulary sheet.
	reasonListRange = "Sheet2!$A$2:$A$25"
	statusListRange = "Sheet2!$B$2:$B$4"

	// Cells the dropdowns cover on the data sheet.
	statusSqref = "D2:D21"
	reasonSqref = "E2:E21"
)

// WriteReasons writes the end-of-week reasons workbook for each unit:
// Friday's still-incomplete scheduled orders with blank Status, Reason and
// Comment columns, plus dropdown validation backed by the fixed
// vocabularies on a second sheet. Managers fill these in by hand.
func WriteReasons(dir string, week int, friday map[string][]workorder.Record) error {
	for _, unit := range workorder.Units() {
		name := fmt.Sprintf("%s Sch Conf Reasons WK%d.xlsx", unit, week)
		if err := writeReasonsWorkbook(filepath.Join(dir, name), friday[unit]); err != nil {
			return err
		}
	}
	return nil
}

func writeReasonsWorkbook(path string, records []workorder.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet1 := f.GetSheetName(0)
	if err := setRow(f, sheet1, 1, []interface{}{"Order", "Item", "Mach hrs rem", "Status", "Reason", "Comment"}); err != nil {
		return err
	}
	for i, rec := range records {
		if err := setRow(f, sheet1, i+2, []interface{}{rec.Order, rec.Item, rec.MachHrsRem}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Sheet2"); err != nil {
		return fmt.Errorf("report: vocabulary sheet: %w", err)
	}
	if err := setRow(f, "Sheet2", 1, []interface{}{"Reasons", "Status"}); err != nil {
		return err
	}
	for i := 0; i < len(ReasonCodes) || i < len(StatusValues); i++ {
		row := []interface{}{nil, nil}
		if i < len(ReasonCodes) {
			row[0] = ReasonCodes[i]
		}
		if i < len(StatusValues) {
			row[1] = StatusValues[i]
		}
		if err := setRow(f, "Sheet2", i+2, row); err != nil {
			return err
		}
	}

	// Status dropdown on column D, reasons dropdown on column E.
	statusDV := excelize.NewDataValidation(true)
	statusDV.Sqref = statusSqref
	statusDV.SetSqrefDropList(statusListRange)
	statusDV.AllowBlank = true
	if err := f.AddDataValidation(sheet1, statusDV); err != nil {
		return fmt.Errorf("report: status validation: %w", err)
	}

	reasonDV := excelize.NewDataValidation(true)
	reasonDV.Sqref = reasonSqref
	reasonDV.SetSqrefDropList(reasonListRange)
	reasonDV.AllowBlank = true
	if err := f.AddDataValidation(sheet1, reasonDV); err != nil {
		return fmt.Errorf("report: reason validation: %w", err)
	}

	if err := fitColumns(f, sheet1); err != nil {
		return err
	}
	if err := fitColumns(f, "Sheet2"); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

package report

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/shopmetrics/schedconform/internal/pipeline"
	"github.com/shopmetrics/schedconform/internal/workorder"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("get %s!%s: %v", sheet, cell, err)
	}
	return v
}

func TestWriteMondayScheduled(t *testing.T) {
	dir := t.TempDir()
	scheduled := map[string][]workorder.Record{
		"DeptD": {{Order: "M1001", Item: "ITEM-A", Description: "BRACKET", MachHrsRem: 4.5}},
	}

	if err := WriteMondayScheduled(dir, 23, scheduled); err != nil {
		t.Fatalf("WriteMondayScheduled: %v", err)
	}

	f := openWorkbook(t, filepath.Join(dir, "DeptD Monday Scheduled MOs WK23.xlsx"))
	sheet := f.GetSheetName(0)
	if got := cellValue(t, f, sheet, "A1"); got != "Order" {
		t.Errorf("A1 = %q, want Order", got)
	}
	if got := cellValue(t, f, sheet, "A2"); got != "M1001" {
		t.Errorf("A2 = %q, want M1001", got)
	}
	if got := cellValue(t, f, sheet, "D2"); got != "4.5" {
		t.Errorf("D2 = %q, want 4.5", got)
	}

	// Units with no baseline still get a headers-only workbook.
	empty := openWorkbook(t, filepath.Join(dir, "DeptL Monday Scheduled MOs WK23.xlsx"))
	if got := cellValue(t, empty, empty.GetSheetName(0), "A1"); got != "Order" {
		t.Errorf("empty unit A1 = %q, want Order", got)
	}
}

func statusFixture(withDerived bool) map[string][]pipeline.ProgressRow {
	rows := []pipeline.ProgressRow{
		{StatusEntry: pipeline.StatusEntry{Weekday: "Monday", MOCount: 10, Hours: 100}},
		{StatusEntry: pipeline.StatusEntry{Weekday: "Tuesday", MOCount: 7, Hours: 80}},
	}
	if withDerived {
		rows[0].HasProgress = true
		rows[1] = pipeline.ProgressRow{
			StatusEntry:    pipeline.StatusEntry{Weekday: "Tuesday", MOCount: 7, Hours: 80},
			MOsComplete:    3,
			HoursComplete:  20,
			PctMOsComplete: 30,
			PctHrsComplete: 20,
			HasProgress:    true,
		}
	}
	status := map[string][]pipeline.ProgressRow{}
	for _, unit := range workorder.Units() {
		status[unit] = nil
	}
	status["DeptD"] = rows
	return status
}

func TestWriteStatus(t *testing.T) {
	dir := t.TempDir()
	if err := WriteStatus(dir, 23, statusFixture(true)); err != nil {
		t.Fatalf("WriteStatus: %v", err)
	}

	f := openWorkbook(t, filepath.Join(dir, StatusFileName(23)))
	if got := cellValue(t, f, "DeptD", "F1"); got != "% MOs Complete" {
		t.Errorf("F1 = %q, want %% MOs Complete", got)
	}
	if got := cellValue(t, f, "DeptD", "F3"); got != "30" {
		t.Errorf("F3 = %q, want 30", got)
	}
	if got := cellValue(t, f, "DeptD", "D2"); got != "0" {
		t.Errorf("D2 = %q, want 0", got)
	}

	// All units get a sheet even with no data.
	if idx, err := f.GetSheetIndex("DeptL"); err != nil || idx < 0 {
		t.Errorf("DeptL sheet missing (idx %d, err %v)", idx, err)
	}
}

func TestWriteStatusNonNumericBlank(t *testing.T) {
	dir := t.TempDir()
	status := statusFixture(true)
	rows := status["DeptD"]
	rows[1].PctMOsComplete = math.NaN()
	rows[1].PctHrsComplete = math.Inf(1)
	status["DeptD"] = rows

	if err := WriteStatus(dir, 23, status); err != nil {
		t.Fatalf("WriteStatus: %v", err)
	}
	f := openWorkbook(t, filepath.Join(dir, StatusFileName(23)))
	if got := cellValue(t, f, "DeptD", "F3"); got != "" {
		t.Errorf("NaN percent cell = %q, want empty", got)
	}
	if got := cellValue(t, f, "DeptD", "G3"); got != "" {
		t.Errorf("Inf percent cell = %q, want empty", got)
	}
}

func TestWriteStatusNoDerivedColumns(t *testing.T) {
	dir := t.TempDir()
	status := statusFixture(false)
	status["DeptD"] = status["DeptD"][:1] // single entry, no progress

	if err := WriteStatus(dir, 23, status); err != nil {
		t.Fatalf("WriteStatus: %v", err)
	}
	f := openWorkbook(t, filepath.Join(dir, StatusFileName(23)))
	if got := cellValue(t, f, "DeptD", "D1"); got != "" {
		t.Errorf("D1 = %q, want no derived header on a one-day series", got)
	}
}

func TestWriteNotScheduled(t *testing.T) {
	dir := t.TempDir()
	tracked := map[string][]pipeline.TrackingRecord{
		"DeptE": {{
			Order: "X1", Description: "EXTRA", Item: "ITEM-X", Facility: "MACH48",
			InitialQty: 20, InitialHrs: 10, EndQty: 12, EndHrs: 6,
			QtyComplete: 8, HrsComplete: 4,
		}},
	}

	if err := WriteNotScheduled(dir, 23, tracked); err != nil {
		t.Fatalf("WriteNotScheduled: %v", err)
	}

	f := openWorkbook(t, filepath.Join(dir, NotScheduledFileName(23)))
	if got := cellValue(t, f, "DeptE", "A2"); got != "X1" {
		t.Errorf("A2 = %q, want X1", got)
	}
	if got := cellValue(t, f, "DeptE", "I2"); got != "8" {
		t.Errorf("I2 = %q, want 8", got)
	}
}

func TestWriteReasons(t *testing.T) {
	dir := t.TempDir()
	friday := map[string][]workorder.Record{
		"DeptD": {{Order: "M1001", Item: "ITEM-A", MachHrsRem: 4.5}},
	}

	if err := WriteReasons(dir, 23, friday); err != nil {
		t.Fatalf("WriteReasons: %v", err)
	}

	f := openWorkbook(t, filepath.Join(dir, "DeptD Sch Conf Reasons WK23.xlsx"))
	sheet := f.GetSheetName(0)
	if got := cellValue(t, f, sheet, "D1"); got != "Status" {
		t.Errorf("D1 = %q, want Status", got)
	}
	if got := cellValue(t, f, sheet, "A2"); got != "M1001" {
		t.Errorf("A2 = %q, want M1001", got)
	}

	// Vocabulary sheet holds both lists.
	if got := cellValue(t, f, "Sheet2", "A2"); got != ReasonCodes[0] {
		t.Errorf("Sheet2!A2 = %q, want %q", got, ReasonCodes[0])
	}
	if got := cellValue(t, f, "Sheet2", "B4"); got != "completed" {
		t.Errorf("Sheet2!B4 = %q, want completed", got)
	}

	dvs, err := f.GetDataValidations(sheet)
	if err != nil {
		t.Fatalf("GetDataValidations: %v", err)
	}
	if len(dvs) != 2 {
		t.Errorf("got %d data validations, want 2", len(dvs))
	}
}

func TestVocabularies(t *testing.T) {
	if len(StatusValues) != 3 {
		t.Errorf("StatusValues has %d entries, want 3", len(StatusValues))
	}
	// The dropdown source range A2:A25 must cover the whole reason list.
	if len(ReasonCodes) != 24 {
		t.Errorf("ReasonCodes has %d entries, want 24 to match %s", len(ReasonCodes), reasonListRange)
	}
}

package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopmetrics/schedconform/internal/config"
	"github.com/shopmetrics/schedconform/internal/db"
	"github.com/shopmetrics/schedconform/internal/ingest"
	"github.com/shopmetrics/schedconform/internal/models"
	"github.com/shopmetrics/schedconform/internal/report"
	"github.com/spf13/cobra"
)

var exportHeaders = []string{
	"Order", "Item", "Item Description", "Facility", "Department",
	"MOP  QTY Remaining", "MO Qty Remaining", "Mach Hrs Remaining",
	"Labor Hrs Remaining", "Hours Remaining",
	"Start Date", "Actual Start Date", "Complete Date",
	"Actual Completion Date", "Due date", "Last Activity Date",
}

func exportRow(order, item, desc, facility, qtyRem, qtyRemMO, machHrs, lastActivity string) []string {
	return []string{
		order, item, desc, facility, "DEPT1",
		qtyRem, qtyRemMO, machHrs, "0", "0",
		"06/01/2026", "", "06/05/2026", "", "06/07/2026", lastActivity,
	}
}

func writeExport(t *testing.T, dir, weekday string, week int, rows [][]string) {
	t.Helper()
	path := filepath.Join(dir, ingest.FileName(weekday, week))
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(exportHeaders); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func testConfig(t *testing.T, dataDir, outputDir, dbPath string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("week: 23\n"))
	if err != nil {
		t.Fatalf("Parse config: %v", err)
	}
	cfg.DataDir = dataDir
	cfg.OutputDir = outputDir
	cfg.Database.Path = dbPath
	return cfg
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	return cmd, buf
}

func TestRunRollup_Tuesday(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	writeExport(t, dataDir, "Monday", 23, [][]string{
		exportRow("M1001", "ITEM-A", "BRACKET", "MACH51", "10", "10", "100", ""),
	})
	writeExport(t, dataDir, "Tuesday", 23, [][]string{
		exportRow("M1001", "ITEM-A", "BRACKET", "MACH51", "7", "7", "80", ""),
		exportRow("X2001", "ITEM-X", "EXTRA", "MACH48", "18", "20", "9", "06/02/26"),
	})

	cfg := testConfig(t, dataDir, outputDir, dbPath)
	cmd, _ := testCmd()
	now := time.Date(2026, 6, 2, 7, 0, 0, 0, time.UTC) // Tuesday

	if err := runRollup(cmd, cfg, 0, "Tuesday", false, true, now); err != nil {
		t.Fatalf("runRollup: %v", err)
	}

	for _, name := range []string{
		report.StatusFileName(23),
		report.NotScheduledFileName(23),
		"Status Week 23.html",
	} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	// Run history persisted.
	gdb, err := db.Connect(cfg.Database)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	var runs []models.ConformanceRun
	if err := gdb.Find(&runs).Error; err != nil {
		t.Fatalf("query runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Week != 23 || runs[0].Weekday != "Tuesday" {
		t.Errorf("runs = %+v, want one week-23 Tuesday run", runs)
	}
}

func TestRunRollup_MondayWritesScheduled(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()

	writeExport(t, dataDir, "Monday", 23, [][]string{
		exportRow("M1001", "ITEM-A", "BRACKET", "MACH51", "10", "10", "100", ""),
	})

	cfg := testConfig(t, dataDir, outputDir, filepath.Join(t.TempDir(), "history.db"))
	cmd, _ := testCmd()
	now := time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC) // Monday

	if err := runRollup(cmd, cfg, 0, "Monday", true, true, now); err != nil {
		t.Fatalf("runRollup: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "DeptD Monday Scheduled MOs WK23.xlsx")); err != nil {
		t.Errorf("missing Monday scheduled workbook: %v", err)
	}
}

func TestRunRollup_MissingExportFails(t *testing.T) {
	cfg := testConfig(t, t.TempDir(), t.TempDir(), filepath.Join(t.TempDir(), "history.db"))
	cmd, _ := testCmd()

	err := runRollup(cmd, cfg, 0, "Monday", true, true, time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected error when the day's export is missing")
	}
}

func TestRunRollup_BadWeekday(t *testing.T) {
	cfg := testConfig(t, t.TempDir(), t.TempDir(), filepath.Join(t.TempDir(), "history.db"))
	cmd, _ := testCmd()

	err := runRollup(cmd, cfg, 0, "Caturday", true, true, time.Now())
	if err == nil {
		t.Fatal("expected error for unknown weekday")
	}
}

package models

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestConformanceRun_Fields(t *testing.T) {
	typ := reflect.TypeOf(ConformanceRun{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "Week", "index")
	assertGormTag(t, typ, "Weekday", "size:16")

	assertFieldType(t, typ, "ID", "string")
	assertFieldType(t, typ, "Week", "int")
	assertFieldType(t, typ, "CreatedAt", "time.Time")
}

func TestConformanceRun_Relations(t *testing.T) {
	typ := reflect.TypeOf(ConformanceRun{})

	assertGormTag(t, typ, "Status", "foreignKey:RunID")
	assertGormTag(t, typ, "NotScheduled", "foreignKey:RunID")

	assertFieldType(t, typ, "Status", "[]models.UnitStatus")
	assertFieldType(t, typ, "NotScheduled", "[]models.NotScheduledMO")
}

func TestUnitStatus_Fields(t *testing.T) {
	typ := reflect.TypeOf(UnitStatus{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "autoIncrement")
	assertGormTag(t, typ, "RunID", "size:36")
	assertGormTag(t, typ, "RunID", "index")
	assertGormTag(t, typ, "Unit", "size:16")
	assertGormTag(t, typ, "Unit", "index")
	assertGormTag(t, typ, "Weekday", "size:16")

	assertFieldType(t, typ, "MOCount", "int")
	assertFieldType(t, typ, "Hours", "float64")
	assertFieldType(t, typ, "MOsComplete", "*float64")
	assertFieldType(t, typ, "HoursComplete", "*float64")
	assertFieldType(t, typ, "PctMOsComplete", "*float64")
	assertFieldType(t, typ, "PctHrsComplete", "*float64")
}

func TestNotScheduledMO_Fields(t *testing.T) {
	typ := reflect.TypeOf(NotScheduledMO{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "autoIncrement")
	assertGormTag(t, typ, "RunID", "size:36")
	assertGormTag(t, typ, "RunID", "index")
	assertGormTag(t, typ, "Unit", "size:16")
	// "order" collides with the SQL keyword.
	assertGormTag(t, typ, "Order", "column:order_no")
	assertGormTag(t, typ, "Facility", "size:16")

	assertFieldType(t, typ, "InitialQty", "float64")
	assertFieldType(t, typ, "QtyComplete", "float64")
}

func TestUnitStatus_Instantiation(t *testing.T) {
	pct := 30.0
	s := UnitStatus{
		RunID:          "2f9c3a1e-0000-0000-0000-000000000000",
		Unit:           "DeptD",
		Weekday:        "Tuesday",
		MOCount:        7,
		Hours:          80,
		PctMOsComplete: &pct,
	}
	if s.Unit != "DeptD" {
		t.Errorf("Unit = %q, want DeptD", s.Unit)
	}
	if *s.PctMOsComplete != 30 {
		t.Errorf("PctMOsComplete = %v, want 30", *s.PctMOsComplete)
	}
	if s.MOsComplete != nil {
		t.Error("MOsComplete should stay nil when unset")
	}
}

func TestConformanceRun_Instantiation(t *testing.T) {
	now := time.Now()
	r := ConformanceRun{
		ID:        "2f9c3a1e-0000-0000-0000-000000000000",
		Week:      23,
		Weekday:   "Friday",
		CreatedAt: now,
	}
	if r.Week != 23 {
		t.Errorf("Week = %d, want 23", r.Week)
	}
	if r.Weekday != "Friday" {
		t.Errorf("Weekday = %q, want Friday", r.Weekday)
	}
}

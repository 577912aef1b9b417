package workorder

import "github.com/samber/lo"

// unitFacilities maps each organizational unit to the facility codes it
// owns. The mapping is fixed: conformance is tracked for exactly these
// facilities, and every tracked facility belongs to exactly one unit.
var unitFacilities = map[string][]string{
	"DeptD": {"MACH51", "MACH52", "MACH53", "MACH54", "MACH55", "MACH57", "MACH58"},
	"DeptE": {"MACH48", "MACH49", "MACH50"},
	"DeptF": {"MACH47", "MACH56", "MACH59", "MACH60", "MACH61", "MACH63"},
	"DeptL": {"MACH62"},
	"DeptB": {"MACH2", "MACH5", "MACH14", "MACH15", "MACH16", "MACH17", "MACH18", "MACH19", "MACH20", "MACH99"},
}

// unitOrder fixes the report ordering of units.
var unitOrder = []string{"DeptD", "DeptE", "DeptF", "DeptL", "DeptB"}

// facilityUnit is the inverse of unitFacilities, built once at init.
var facilityUnit = func() map[string]string {
	m := make(map[string]string)
	for unit, facilities := range unitFacilities {
		for _, f := range facilities {
			m[f] = unit
		}
	}
	return m
}()

// Units returns the unit names in report order.
func Units() []string {
	return append([]string(nil), unitOrder...)
}

// TrackedFacilities returns every facility code that participates in
// schedule conformance.
func TrackedFacilities() []string {
	return lo.Flatten(lo.Map(unitOrder, func(unit string, _ int) []string {
		return unitFacilities[unit]
	}))
}

// Tracked reports whether a facility is in the conformance set.
func Tracked(facility string) bool {
	_, ok := facilityUnit[facility]
	return ok
}

// UnitFor returns the organizational unit owning a facility, or "" if the
// facility is untracked.
func UnitFor(facility string) string {
	return facilityUnit[facility]
}

// SplitByUnit partitions records by organizational unit. Every unit appears
// in the result even when its subset is empty. Records for untracked
// facilities are omitted; they should not survive normalization, but the
// partitioner tolerates them.
func SplitByUnit(records []Record) map[string][]Record {
	out := make(map[string][]Record, len(unitOrder))
	for _, unit := range unitOrder {
		out[unit] = []Record{}
	}
	for _, r := range records {
		unit := UnitFor(r.Facility)
		if unit == "" {
			continue
		}
		out[unit] = append(out[unit], r)
	}
	return out
}

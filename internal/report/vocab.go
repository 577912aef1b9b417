// Package report writes the weekly conformance workbooks: the Monday
// scheduled lists, the per-unit status series, the not-scheduled tracker,
// and the end-of-week reasons workbook managers annotate.
package report

// ReasonCodes is the closed vocabulary of reasons a scheduled order did
// not complete, offered as a dropdown in the reasons workbook.
var ReasonCodes = []string{
	"Safety Stop/hold",
	"Quality hold - NCR",
	"metals/materials not in stock",
	"metals/materials not prepped",
	"material at OSP",
	"in-stock material found defective",
	"no compound - outside supplier",
	"no compound - in-house (M&P)",
	"mold/tool not available - needs repair",
	"mold/tool not available - needs cleaning",
	"insufficient qty of material",
	"prior work order not complete",
	"equipment not operational",
	"equipment under maintenance/PM",
	"equipment/process not released by Tech/Mfg Eng",
	"Engineering hold (Design/Product)",
	"failed bat heat/test",
	"replaced by expedited work order",
	"1st pcs failed",
	"no operator",
	"documentation error",
	"waiting on Test Lab",
	"insufficient time/over scheduled",
	"hold over from prior week",
}

// StatusValues is the closed vocabulary for order status annotation.
var StatusValues = []string{"not started", "in progress", "completed"}

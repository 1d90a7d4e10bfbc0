package driver

import (
	"encoding/json"
	"fmt"

	"busguard/internal/diag"
	"busguard/internal/observ"
)

// appendTimingDiagnostic records report as an ObsTimings INFO diagnostic whose
// single note carries the JSON payload. The bag grows past its cap if needed.
func appendTimingDiagnostic(bag *diag.Bag, report observ.Report) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  fmt.Sprintf("timings: total %.2f ms", report.TotalMS),
		Notes:    []diag.Note{{Msg: string(data)}},
	}
	// Merge, не Add: запись о таймингах не должна попадать в Dropped
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}

package formatter

import (
	"time"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
)

// FormatCalcResult renders a quick calculation.
func FormatCalcResult(reference, measured float64, r compliance.Result) string {
	return RenderBox("Quick calc", KeyValues([][2]string{
		{"Reference", Flow(reference)},
		{"Measured", Flow(measured)},
		{"Deviation", Deviation(r)},
		{"Status", StatusBadge(r)},
	}))
}

// FormatHistory renders the quick-calc history, newest first.
func FormatHistory(items []domain.QuickCalcHistoryItem, now time.Time) string {
	if len(items) == 0 {
		return Dim("No calculations yet.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		r := compliance.Result{
			Deviation: it.Deviation,
			Status:    compliance.Status(it.Status),
			Label:     compliance.Label(compliance.Status(it.Status)),
		}
		rows = append(rows, []string{
			Timestamp(it.Timestamp, now),
			Flow(it.ReferenceFlow),
			Flow(it.MeasuredFlow),
			Deviation(r),
			StatusBadge(r),
		})
	}
	return RenderTable([]string{"WHEN", "REFERENCE", "MEASURED", "DEVIATION", "STATUS"}, rows)
}

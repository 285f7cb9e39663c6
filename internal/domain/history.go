package domain

import "time"

// MaxQuickCalcHistory is the number of ad-hoc calculations kept.
const MaxQuickCalcHistory = 5

// QuickCalcHistoryItem records one ad-hoc compliance calculation that is not
// attached to any shutter.
type QuickCalcHistoryItem struct {
	ID            string    `json:"id"`
	ReferenceFlow float64   `json:"referenceFlow"`
	MeasuredFlow  float64   `json:"measuredFlow"`
	Deviation     float64   `json:"deviation"`
	Status        string    `json:"status"`
	Color         string    `json:"color"`
	Timestamp     time.Time `json:"timestamp"`
}

type QuickCalcInput struct {
	ReferenceFlow float64
	MeasuredFlow  float64
	Deviation     float64
	Status        string
	Color         string
}

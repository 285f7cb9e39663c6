// Package compliance classifies a shutter's measured airflow against its
// design (reference) airflow.
//
// The deviation is the signed percentage difference of measured over
// reference flow. Its magnitude falls into one of three bands: strictly
// below 10% is compliant, 10% to 20% inclusive is acceptable, anything
// above 20% is non-compliant. A zero reference flow cannot be evaluated and
// is reported as non-compliant with a zero deviation.
package compliance

import (
	"math"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusAcceptable   Status = "acceptable"
	StatusNonCompliant Status = "non-compliant"
)

// Band limits, in percent of the reference flow.
const (
	CompliantLimit  = 10.0
	AcceptableLimit = 20.0
)

// Palette tokens.
const (
	ColorCompliant    = "#10B981"
	ColorAcceptable   = "#F59E0B"
	ColorNonCompliant = "#EF4444"
)

const LabelInvalidReference = "Référence invalide"

var labels = map[Status]string{
	StatusCompliant:    "Conforme",
	StatusAcceptable:   "Acceptable",
	StatusNonCompliant: "Non conforme",
}

var colors = map[Status]string{
	StatusCompliant:    ColorCompliant,
	StatusAcceptable:   ColorAcceptable,
	StatusNonCompliant: ColorNonCompliant,
}

// Result is the outcome of one evaluation.
type Result struct {
	Deviation float64
	Status    Status
	Color     string
	Label     string
}

// Calculate evaluates a measured flow against its reference. Inputs are not
// validated: negative values propagate through the arithmetic.
func Calculate(referenceFlow, measuredFlow float64) Result {
	if referenceFlow == 0 {
		return Result{
			Deviation: 0,
			Status:    StatusNonCompliant,
			Color:     ColorNonCompliant,
			Label:     LabelInvalidReference,
		}
	}

	deviation := (measuredFlow - referenceFlow) / referenceFlow * 100
	status := Classify(deviation)
	return Result{
		Deviation: deviation,
		Status:    status,
		Color:     colors[status],
		Label:     labels[status],
	}
}

// Classify maps a deviation percentage to its status band.
func Classify(deviation float64) Status {
	abs := math.Abs(deviation)
	switch {
	case abs < CompliantLimit:
		return StatusCompliant
	case abs <= AcceptableLimit:
		return StatusAcceptable
	default:
		return StatusNonCompliant
	}
}

// Label returns the display label of a status.
func Label(s Status) string {
	return labels[s]
}

// Color returns the palette token of a status.
func Color(s Status) string {
	return colors[s]
}

// FormatDeviation renders a deviation with an explicit sign and one decimal,
// e.g. "+10.0%" or "-4.3%". Values that round to zero print as "+0.0%".
func FormatDeviation(deviation float64) string {
	if math.IsNaN(deviation) || math.IsInf(deviation, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(deviation).Round(1)
	sign := ""
	if !d.IsNegative() {
		sign = "+"
	}
	return sign + d.StringFixed(1) + "%"
}

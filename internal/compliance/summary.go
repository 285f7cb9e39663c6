package compliance

import "github.com/alexanderramin/shutterflow/internal/domain"

// Summary aggregates evaluation results over a set of shutters.
type Summary struct {
	Total        int
	Compliant    int
	Acceptable   int
	NonCompliant int
}

// Summarize evaluates every shutter and counts the statuses.
func Summarize(shutters []*domain.Shutter) Summary {
	var s Summary
	for _, sh := range shutters {
		s.Add(Calculate(sh.ReferenceFlow, sh.MeasuredFlow).Status)
	}
	return s
}

// Add counts one more result.
func (s *Summary) Add(status Status) {
	s.Total++
	switch status {
	case StatusCompliant:
		s.Compliant++
	case StatusAcceptable:
		s.Acceptable++
	default:
		s.NonCompliant++
	}
}

// Rate is the share of compliant or acceptable shutters, in percent.
// An empty summary has a rate of 0.
func (s Summary) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Compliant+s.Acceptable) / float64(s.Total) * 100
}

// Worst returns the most severe status present, or compliant when empty.
func (s Summary) Worst() Status {
	switch {
	case s.NonCompliant > 0:
		return StatusNonCompliant
	case s.Acceptable > 0:
		return StatusAcceptable
	default:
		return StatusCompliant
	}
}

package domain

import "time"

// Shutter is a single smoke-extraction damper under test. Flows are in m³/h.
type Shutter struct {
	ID            string      `json:"id"`
	ZoneID        string      `json:"zoneId"`
	Name          string      `json:"name"`
	Type          ShutterType `json:"type"`
	ReferenceFlow float64     `json:"referenceFlow"`
	MeasuredFlow  float64     `json:"measuredFlow"`
	Remarks       string      `json:"remarks,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type ShutterInput struct {
	Name          string
	Type          ShutterType
	ReferenceFlow float64
	MeasuredFlow  float64
	Remarks       string
}

type ShutterPatch struct {
	Name          *string
	Type          *ShutterType
	ReferenceFlow *float64
	MeasuredFlow  *float64
	Remarks       *string
}

func (patch ShutterPatch) Apply(s *Shutter) {
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	if patch.ReferenceFlow != nil {
		s.ReferenceFlow = *patch.ReferenceFlow
	}
	if patch.MeasuredFlow != nil {
		s.MeasuredFlow = *patch.MeasuredFlow
	}
	if patch.Remarks != nil {
		s.Remarks = *patch.Remarks
	}
}

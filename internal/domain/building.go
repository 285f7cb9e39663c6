package domain

import "time"

type Building struct {
	ID              string            `json:"id"`
	ProjectID       string            `json:"projectId"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	FunctionalZones []*FunctionalZone `json:"functionalZones"`
}

type BuildingInput struct {
	Name        string
	Description string
}

type BuildingPatch struct {
	Name        *string
	Description *string
}

func (patch BuildingPatch) Apply(b *Building) {
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
}

func (b *Building) ShutterCount() int {
	n := 0
	for _, z := range b.FunctionalZones {
		n += len(z.Shutters)
	}
	return n
}

func (b *Building) AllShutters() []*Shutter {
	var out []*Shutter
	for _, z := range b.FunctionalZones {
		out = append(out, z.Shutters...)
	}
	return out
}

// FunctionalZone groups the shutters serving one smoke-control area of a
// building.
type FunctionalZone struct {
	ID          string     `json:"id"`
	BuildingID  string     `json:"buildingId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Shutters    []*Shutter `json:"shutters"`
}

type ZoneInput struct {
	Name        string
	Description string
}

type ZonePatch struct {
	Name        *string
	Description *string
}

func (patch ZonePatch) Apply(z *FunctionalZone) {
	if patch.Name != nil {
		z.Name = *patch.Name
	}
	if patch.Description != nil {
		z.Description = *patch.Description
	}
}

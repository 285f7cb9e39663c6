package domain

import "time"

// Project is the root of a site survey: a set of buildings whose shutters
// are measured against their design airflow.
type Project struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	City      string      `json:"city,omitempty"`
	StartDate *time.Time  `json:"startDate,omitempty"`
	EndDate   *time.Time  `json:"endDate,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Buildings []*Building `json:"buildings"`
}

// ProjectInput carries the caller-supplied fields for a new project.
type ProjectInput struct {
	Name      string
	City      string
	StartDate *time.Time
	EndDate   *time.Time
}

// ProjectPatch holds the fields to merge into an existing project.
// Nil fields are left untouched.
type ProjectPatch struct {
	Name      *string
	City      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Apply merges the non-nil patch fields into p.
func (patch ProjectPatch) Apply(p *Project) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.StartDate != nil {
		d := *patch.StartDate
		p.StartDate = &d
	}
	if patch.EndDate != nil {
		d := *patch.EndDate
		p.EndDate = &d
	}
}

// ShutterCount returns the number of shutters across every building and zone.
func (p *Project) ShutterCount() int {
	n := 0
	for _, b := range p.Buildings {
		n += b.ShutterCount()
	}
	return n
}

// AllShutters returns the project's shutters in tree order.
func (p *Project) AllShutters() []*Shutter {
	var out []*Shutter
	for _, b := range p.Buildings {
		out = append(out, b.AllShutters()...)
	}
	return out
}

// DisplayID returns a short ID prefix that can be passed back on the command
// line.
func (p *Project) DisplayID() string {
	return ShortID(p.ID)
}

package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/store"
)

// FixedClock returns a clock starting at start and advancing by one second on
// every call, so successive ids and timestamps differ.
func FixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(time.Second)
		return t
	}
}

// Project options
type ProjectOption func(*domain.Project)

func WithCity(city string) ProjectOption {
	return func(p *domain.Project) {
		p.City = city
	}
}

func WithBuildings(b ...*domain.Building) ProjectOption {
	return func(p *domain.Project) {
		p.Buildings = append(p.Buildings, b...)
	}
}

// NewTestProject builds a detached project value; ids are placeholders and
// are replaced when the project goes through Store.ImportProject.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        domain.NewID(now),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Buildings: []*domain.Building{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestBuilding(name string, zones ...*domain.FunctionalZone) *domain.Building {
	now := time.Now().UTC()
	return &domain.Building{
		ID:              domain.NewID(now),
		Name:            name,
		CreatedAt:       now,
		FunctionalZones: append([]*domain.FunctionalZone{}, zones...),
	}
}

func NewTestZone(name string, shutters ...*domain.Shutter) *domain.FunctionalZone {
	now := time.Now().UTC()
	return &domain.FunctionalZone{
		ID:        domain.NewID(now),
		Name:      name,
		CreatedAt: now,
		Shutters:  append([]*domain.Shutter{}, shutters...),
	}
}

// Shutter options
type ShutterOption func(*domain.Shutter)

func WithType(t domain.ShutterType) ShutterOption {
	return func(s *domain.Shutter) {
		s.Type = t
	}
}

func NewTestShutter(name string, reference, measured float64, opts ...ShutterOption) *domain.Shutter {
	now := time.Now().UTC()
	s := &domain.Shutter{
		ID:            domain.NewID(now),
		Name:          name,
		Type:          domain.ShutterHigh,
		ReferenceFlow: reference,
		MeasuredFlow:  measured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seeded holds the entities created by SeedTower.
type Seeded struct {
	Project  *domain.Project
	Building *domain.Building
	Zone     *domain.FunctionalZone
	Shutters []*domain.Shutter
}

// SeedTower creates one project ("Tour Horizon", Lyon) with one building, one
// zone and three shutters: compliant, acceptable and non-compliant.
func SeedTower(t *testing.T, st *store.Store) Seeded {
	t.Helper()
	ctx := context.Background()

	p := st.CreateProject(ctx, domain.ProjectInput{Name: "Tour Horizon", City: "Lyon"})
	b, ok := st.CreateBuilding(ctx, p.ID, domain.BuildingInput{Name: "Bâtiment A"})
	if !ok {
		t.Fatalf("seed: building not created")
	}
	z, ok := st.CreateFunctionalZone(ctx, b.ID, domain.ZoneInput{Name: "Zone 1"})
	if !ok {
		t.Fatalf("seed: zone not created")
	}

	out := Seeded{Project: p, Building: b, Zone: z}
	for _, in := range []domain.ShutterInput{
		{Name: "VH01", Type: domain.ShutterHigh, ReferenceFlow: 1000, MeasuredFlow: 1050},
		{Name: "VB01", Type: domain.ShutterLow, ReferenceFlow: 1000, MeasuredFlow: 850, Remarks: "grille encrassée"},
		{Name: "VH02", Type: domain.ShutterHigh, ReferenceFlow: 1000, MeasuredFlow: 700},
	} {
		sh, ok := st.CreateShutter(ctx, z.ID, in)
		if !ok {
			t.Fatalf("seed: shutter %s not created", in.Name)
		}
		out.Shutters = append(out.Shutters, sh)
	}
	return out
}

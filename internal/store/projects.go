package store

import (
	"context"
	"slices"

	"github.com/alexanderramin/shutterflow/internal/domain"
)

// Ref locates an entity in the tree together with its ancestors. Fields below
// the located entity are nil.
type Ref struct {
	Project  *domain.Project
	Building *domain.Building
	Zone     *domain.FunctionalZone
	Shutter  *domain.Shutter
}

// SearchResult is one shutter hit with its full ancestry.
type SearchResult = Ref

// GetProjects returns a shallow copy of the project list in insertion order.
func (s *Store) GetProjects(ctx context.Context) []*domain.Project {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.projects)
}

func (s *Store) GetProject(ctx context.Context, id string) (*domain.Project, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.index.lookupKind(id, kindProject)
	if !ok {
		return nil, false
	}
	return e.Project, true
}

func (s *Store) FindBuilding(ctx context.Context, id string) (Ref, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildingRef(id)
}

func (s *Store) FindZone(ctx context.Context, id string) (Ref, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoneRef(id)
}

func (s *Store) FindShutter(ctx context.Context, id string) (Ref, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutterRef(id)
}

func (s *Store) buildingRef(id string) (Ref, bool) {
	e, ok := s.index.lookupKind(id, kindBuilding)
	if !ok {
		return Ref{}, false
	}
	p, ok := s.index.lookupKind(e.ParentID, kindProject)
	if !ok {
		return Ref{}, false
	}
	return Ref{Project: p.Project, Building: e.Building}, true
}

func (s *Store) zoneRef(id string) (Ref, bool) {
	e, ok := s.index.lookupKind(id, kindZone)
	if !ok {
		return Ref{}, false
	}
	ref, ok := s.buildingRef(e.ParentID)
	if !ok {
		return Ref{}, false
	}
	ref.Zone = e.Zone
	return ref, true
}

func (s *Store) shutterRef(id string) (Ref, bool) {
	e, ok := s.index.lookupKind(id, kindShutter)
	if !ok {
		return Ref{}, false
	}
	ref, ok := s.zoneRef(e.ParentID)
	if !ok {
		return Ref{}, false
	}
	ref.Shutter = e.Shutter
	return ref, true
}

func (s *Store) CreateProject(ctx context.Context, in domain.ProjectInput) *domain.Project {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := &domain.Project{
		ID:        domain.NewID(now),
		Name:      in.Name,
		City:      in.City,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
		Buildings: []*domain.Building{},
	}
	s.projects = append(s.projects, p)
	s.index.addProjectTree(p)
	s.persist(ctx, KeyProjects)
	return p
}

// CreateBuilding appends a building to the project. It reports false when
// the project does not exist.
func (s *Store) CreateBuilding(ctx context.Context, projectID string, in domain.BuildingInput) (*domain.Building, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.index.lookupKind(projectID, kindProject)
	if !ok {
		return nil, false
	}
	now := s.now()
	b := &domain.Building{
		ID:              domain.NewID(now),
		ProjectID:       projectID,
		Name:            in.Name,
		Description:     in.Description,
		CreatedAt:       now,
		FunctionalZones: []*domain.FunctionalZone{},
	}
	parent.Project.Buildings = append(parent.Project.Buildings, b)
	s.index.add(&indexEntry{ID: b.ID, Kind: kindBuilding, ParentID: projectID, Building: b})
	s.persist(ctx, KeyProjects)
	return b, true
}

func (s *Store) CreateFunctionalZone(ctx context.Context, buildingID string, in domain.ZoneInput) (*domain.FunctionalZone, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.index.lookupKind(buildingID, kindBuilding)
	if !ok {
		return nil, false
	}
	now := s.now()
	z := &domain.FunctionalZone{
		ID:          domain.NewID(now),
		BuildingID:  buildingID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		Shutters:    []*domain.Shutter{},
	}
	parent.Building.FunctionalZones = append(parent.Building.FunctionalZones, z)
	s.index.add(&indexEntry{ID: z.ID, Kind: kindZone, ParentID: buildingID, Zone: z})
	s.persist(ctx, KeyProjects)
	return z, true
}

func (s *Store) CreateShutter(ctx context.Context, zoneID string, in domain.ShutterInput) (*domain.Shutter, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.index.lookupKind(zoneID, kindZone)
	if !ok {
		return nil, false
	}
	now := s.now()
	sh := &domain.Shutter{
		ID:            domain.NewID(now),
		ZoneID:        zoneID,
		Name:          in.Name,
		Type:          in.Type,
		ReferenceFlow: in.ReferenceFlow,
		MeasuredFlow:  in.MeasuredFlow,
		Remarks:       in.Remarks,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	parent.Zone.Shutters = append(parent.Zone.Shutters, sh)
	s.index.add(&indexEntry{ID: sh.ID, Kind: kindShutter, ParentID: zoneID, Shutter: sh})
	s.persist(ctx, KeyProjects)
	return sh, true
}

// UpdateProject merges patch into the project and refreshes UpdatedAt.
func (s *Store) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindProject)
	if !ok {
		return nil, false
	}
	patch.Apply(e.Project)
	e.Project.UpdatedAt = s.now()
	s.persist(ctx, KeyProjects)
	return e.Project, true
}

// UpdateBuilding merges patch into the building. Buildings carry no
// UpdatedAt.
func (s *Store) UpdateBuilding(ctx context.Context, id string, patch domain.BuildingPatch) (*domain.Building, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindBuilding)
	if !ok {
		return nil, false
	}
	patch.Apply(e.Building)
	s.persist(ctx, KeyProjects)
	return e.Building, true
}

func (s *Store) UpdateFunctionalZone(ctx context.Context, id string, patch domain.ZonePatch) (*domain.FunctionalZone, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindZone)
	if !ok {
		return nil, false
	}
	patch.Apply(e.Zone)
	s.persist(ctx, KeyProjects)
	return e.Zone, true
}

func (s *Store) UpdateShutter(ctx context.Context, id string, patch domain.ShutterPatch) (*domain.Shutter, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindShutter)
	if !ok {
		return nil, false
	}
	patch.Apply(e.Shutter)
	e.Shutter.UpdatedAt = s.now()
	s.persist(ctx, KeyProjects)
	return e.Shutter, true
}

// DeleteProject removes the project and everything under it, and drops its
// id from the project favorites.
func (s *Store) DeleteProject(ctx context.Context, id string) bool {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index.lookupKind(id, kindProject); !ok {
		return false
	}
	s.projects = slices.DeleteFunc(s.projects, func(p *domain.Project) bool { return p.ID == id })
	s.afterDeleteLocked(ctx, id, domain.FavoriteProject)
	return true
}

func (s *Store) DeleteBuilding(ctx context.Context, id string) bool {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindBuilding)
	if !ok {
		return false
	}
	parent, ok := s.index.lookupKind(e.ParentID, kindProject)
	if !ok {
		return false
	}
	parent.Project.Buildings = slices.DeleteFunc(parent.Project.Buildings, func(b *domain.Building) bool { return b.ID == id })
	s.afterDeleteLocked(ctx, id, domain.FavoriteBuilding)
	return true
}

func (s *Store) DeleteFunctionalZone(ctx context.Context, id string) bool {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindZone)
	if !ok {
		return false
	}
	parent, ok := s.index.lookupKind(e.ParentID, kindBuilding)
	if !ok {
		return false
	}
	parent.Building.FunctionalZones = slices.DeleteFunc(parent.Building.FunctionalZones, func(z *domain.FunctionalZone) bool { return z.ID == id })
	s.afterDeleteLocked(ctx, id, domain.FavoriteZone)
	return true
}

func (s *Store) DeleteShutter(ctx context.Context, id string) bool {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindShutter)
	if !ok {
		return false
	}
	parent, ok := s.index.lookupKind(e.ParentID, kindZone)
	if !ok {
		return false
	}
	parent.Zone.Shutters = slices.DeleteFunc(parent.Zone.Shutters, func(sh *domain.Shutter) bool { return sh.ID == id })
	s.afterDeleteLocked(ctx, id, domain.FavoriteShutter)
	return true
}

// afterDeleteLocked drops id (and its descendants) from the index, scrubs id
// from the matching favorites bucket and persists both buckets together.
// Descendant ids stay in their own favorites buckets; readers skip ids that
// no longer resolve.
func (s *Store) afterDeleteLocked(ctx context.Context, id string, kind domain.FavoriteKind) {
	s.index.removeSubtree(id)
	s.favorites[kind] = slices.DeleteFunc(slices.Clone(s.favorites[kind]), func(f string) bool { return f == id })
	s.persist(ctx, KeyProjects, favoriteKeys[kind])
}

package store

import (
	"context"
	"slices"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
)

// ImportProject appends a copy of p with fresh ids throughout the tree, so an
// exported project can be imported next to its original. Creation times are
// kept; missing ones are set to now. The project's UpdatedAt is set to now.
func (s *Store) ImportProject(ctx context.Context, p *domain.Project) *domain.Project {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := &domain.Project{
		ID:        domain.NewID(now),
		Name:      p.Name,
		City:      p.City,
		StartDate: cloneTime(p.StartDate),
		EndDate:   cloneTime(p.EndDate),
		CreatedAt: orNow(p.CreatedAt, now),
		UpdatedAt: now,
		Buildings: make([]*domain.Building, 0, len(p.Buildings)),
	}
	for _, b := range p.Buildings {
		if b == nil {
			continue
		}
		nb := &domain.Building{
			ID:              domain.NewID(now),
			ProjectID:       out.ID,
			Name:            b.Name,
			Description:     b.Description,
			CreatedAt:       orNow(b.CreatedAt, now),
			FunctionalZones: make([]*domain.FunctionalZone, 0, len(b.FunctionalZones)),
		}
		for _, z := range b.FunctionalZones {
			if z == nil {
				continue
			}
			nz := &domain.FunctionalZone{
				ID:          domain.NewID(now),
				BuildingID:  nb.ID,
				Name:        z.Name,
				Description: z.Description,
				CreatedAt:   orNow(z.CreatedAt, now),
				Shutters:    make([]*domain.Shutter, 0, len(z.Shutters)),
			}
			for _, sh := range z.Shutters {
				if sh == nil {
					continue
				}
				nz.Shutters = append(nz.Shutters, &domain.Shutter{
					ID:            domain.NewID(now),
					ZoneID:        nz.ID,
					Name:          sh.Name,
					Type:          sh.Type,
					ReferenceFlow: sh.ReferenceFlow,
					MeasuredFlow:  sh.MeasuredFlow,
					Remarks:       sh.Remarks,
					CreatedAt:     orNow(sh.CreatedAt, now),
					UpdatedAt:     orNow(sh.UpdatedAt, now),
				})
			}
			nb.FunctionalZones = append(nb.FunctionalZones, nz)
		}
		out.Buildings = append(out.Buildings, nb)
	}

	s.projects = append(s.projects, out)
	s.index.addProjectTree(out)
	s.persist(ctx, KeyProjects)
	return out
}

// ImportNotes appends copies of notes with fresh ids and returns them.
func (s *Store) ImportNotes(ctx context.Context, notes []*domain.Note) []*domain.Note {
	if len(notes) == 0 {
		return nil
	}
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			continue
		}
		nn := &domain.Note{
			ID:          domain.NewID(now),
			Title:       n.Title,
			Description: n.Description,
			Location:    n.Location,
			Tags:        slices.Clone(n.Tags),
			Content:     n.Content,
			CreatedAt:   orNow(n.CreatedAt, now),
			UpdatedAt:   orNow(n.UpdatedAt, now),
			Images:      append([]string{}, n.Images...),
		}
		s.notes = append(s.notes, nn)
		s.index.add(&indexEntry{ID: nn.ID, Kind: kindNote, Note: nn})
		out = append(out, nn)
	}
	s.persist(ctx, KeyNotes)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

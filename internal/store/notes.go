package store

import (
	"context"
	"slices"

	"github.com/alexanderramin/shutterflow/internal/domain"
)

// GetNotes returns the notes in creation order.
func (s *Store) GetNotes(ctx context.Context) []*domain.Note {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.index.lookupKind(id, kindNote)
	if !ok {
		return nil, false
	}
	return e.Note, true
}

func (s *Store) CreateNote(ctx context.Context, in domain.NoteInput) *domain.Note {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := &domain.Note{
		ID:          domain.NewID(now),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Tags:        slices.Clone(in.Tags),
		Content:     in.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
		Images:      []string{},
	}
	s.notes = append(s.notes, n)
	s.index.add(&indexEntry{ID: n.ID, Kind: kindNote, Note: n})
	s.persist(ctx, KeyNotes)
	return n
}

func (s *Store) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, bool) {
	return s.mutateNote(ctx, id, patch.Apply)
}

func (s *Store) DeleteNote(ctx context.Context, id string) bool {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index.lookupKind(id, kindNote); !ok {
		return false
	}
	s.notes = slices.DeleteFunc(s.notes, func(n *domain.Note) bool { return n.ID == id })
	s.index.removeSubtree(id)
	s.persist(ctx, KeyNotes)
	return true
}

// AddNoteImage appends an encoded image payload to the note.
func (s *Store) AddNoteImage(ctx context.Context, id, image string) (*domain.Note, bool) {
	return s.mutateNote(ctx, id, func(n *domain.Note) {
		n.Images = append(n.Images, image)
	})
}

// RemoveNoteImage drops the image at position i. An out-of-range index
// leaves the note unchanged and reports false.
func (s *Store) RemoveNoteImage(ctx context.Context, id string, i int) (*domain.Note, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindNote)
	if !ok || i < 0 || i >= len(e.Note.Images) {
		return nil, false
	}
	e.Note.Images = slices.Delete(slices.Clone(e.Note.Images), i, i+1)
	e.Note.UpdatedAt = s.now()
	s.persist(ctx, KeyNotes)
	return e.Note, true
}

func (s *Store) mutateNote(ctx context.Context, id string, fn func(*domain.Note)) (*domain.Note, bool) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index.lookupKind(id, kindNote)
	if !ok {
		return nil, false
	}
	fn(e.Note)
	e.Note.UpdatedAt = s.now()
	s.persist(ctx, KeyNotes)
	return e.Note, true
}

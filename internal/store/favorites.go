package store

import (
	"context"
	"slices"

	"github.com/alexanderramin/shutterflow/internal/domain"
)

// Favorites returns a copy of the id list for kind. Ids are not checked
// against the tree and may point at deleted entities.
func (s *Store) Favorites(ctx context.Context, kind domain.FavoriteKind) []string {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.favorites[kind]...)
}

// SetFavorites replaces the id list for kind.
func (s *Store) SetFavorites(ctx context.Context, kind domain.FavoriteKind, ids []string) {
	key, ok := favoriteKeys[kind]
	if !ok {
		s.logger.Warn("ignoring unknown favorite kind")
		return
	}
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites[kind] = append([]string{}, ids...)
	s.persist(ctx, key)
}

// ToggleFavorite adds id to the kind bucket, or removes it when present. It
// reports whether id is a favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, kind domain.FavoriteKind, id string) bool {
	key, ok := favoriteKeys[kind]
	if !ok {
		return false
	}
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.favorites[kind]
	if slices.Contains(ids, id) {
		s.favorites[kind] = slices.DeleteFunc(slices.Clone(ids), func(f string) bool { return f == id })
		s.persist(ctx, key)
		return false
	}
	s.favorites[kind] = append(slices.Clone(ids), id)
	s.persist(ctx, key)
	return true
}

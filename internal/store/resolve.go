package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by ResolveID when no id matches.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned by ResolveID when a prefix matches several ids.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// ResolveID expands a full id or unique id prefix for the given kind. Kind is
// one of the favorite kinds or "note".
func (s *Store) ResolveID(ctx context.Context, kind, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%s %q: %w", kind, prefix, ErrNotFound)
	}
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index.lookupKind(prefix, kind); ok {
		return prefix, nil
	}
	ids := s.index.withPrefix(kind, prefix)
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%s %q matches %d ids: %w", kind, prefix, len(ids), ErrAmbiguous)
	}
}

// KindNote selects notes in ResolveID.
const KindNote = kindNote

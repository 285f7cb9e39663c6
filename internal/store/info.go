package store

import (
	"context"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Info summarizes what the store holds.
type Info struct {
	ProjectCount int
	ShutterCount int
	NoteCount    int
	Bytes        int
	Size         string
}

// StorageInfo reports entity counts and the serialized size of the projects
// and notes buckets.
func (s *Store) StorageInfo(ctx context.Context) Info {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, key := range []string{KeyProjects, KeyNotes} {
		raw, err := encodeBucket(s.bucketValue(key))
		if err != nil {
			s.logger.Warn("sizing bucket failed", zap.String("key", key), zap.Error(err))
			continue
		}
		total += len(raw)
	}
	return Info{
		ProjectCount: len(s.projects),
		ShutterCount: s.index.count(kindShutter),
		NoteCount:    len(s.notes),
		Bytes:        total,
		Size:         humanize.Bytes(uint64(total)),
	}
}

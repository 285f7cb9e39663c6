// Package store holds the project tree, favorites, quick-calc history and
// notes in memory and mirrors each bucket to a key-value backend after every
// mutation.
//
// Reads never fail: a missing entity is reported with a false result, and a
// bucket that cannot be read loads as empty. Writes are best-effort; a
// persistence failure is logged and the in-memory state stays authoritative
// for the life of the process.
package store

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/kv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Store is the hierarchical project store. The zero value is not usable;
// construct with New.
type Store struct {
	kv     kv.Store
	logger *zap.Logger
	now    func() time.Time

	loadGroup singleflight.Group
	loaded    atomic.Bool

	mu        sync.Mutex
	projects  []*domain.Project
	favorites map[domain.FavoriteKind][]string
	history   []domain.QuickCalcHistoryItem
	notes     []*domain.Note
	index     *entityIndex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence and decode failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		logger: zap.NewNop(),
		now:    time.Now,
		index:  newEntityIndex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("store")
	s.resetLocked()
	return s
}

// Initialize loads every bucket from the backend. It is safe to call any
// number of times; only the first successful call reads the backend.
func (s *Store) Initialize(ctx context.Context) {
	s.ensureLoaded(ctx)
}

// ensureLoaded runs the load at most once at a time. A shared load runs under
// the context of the caller that started it; when that caller is cancelled,
// the others start a fresh load under their own context.
func (s *Store) ensureLoaded(ctx context.Context) {
	for !s.loaded.Load() {
		_, _, _ = s.loadGroup.Do("load", func() (any, error) {
			if s.loaded.Load() {
				return nil, nil
			}
			s.load(ctx)
			return nil, nil
		})
		if ctx.Err() != nil {
			return
		}
	}
}

type loadedState struct {
	projects  []*domain.Project
	favorites map[domain.FavoriteKind][]string
	history   []domain.QuickCalcHistoryItem
	notes     []*domain.Note
}

func (s *Store) load(ctx context.Context) {
	var (
		st      loadedState
		favMu   sync.Mutex
		started = time.Now()
	)
	st.favorites = make(map[domain.FavoriteKind][]string, len(domain.FavoriteKinds))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readBucket(gctx, s, KeyProjects, &st.projects)
	})
	for _, kind := range domain.FavoriteKinds {
		g.Go(func() error {
			var ids []string
			if err := readBucket(gctx, s, favoriteKeys[kind], &ids); err != nil {
				return err
			}
			favMu.Lock()
			st.favorites[kind] = ids
			favMu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		return readBucket(gctx, s, KeyQuickCalcHistory, &st.history)
	})
	g.Go(func() error {
		return readBucket(gctx, s, KeyNotes, &st.notes)
	})

	if err := g.Wait(); err != nil {
		// Cancelled before every bucket was read; leave the guard open so
		// the next call retries instead of persisting a partial view.
		s.logger.Warn("load interrupted", zap.Error(err))
		return
	}

	st.projects = normalizeProjects(st.projects)
	st.notes = normalizeNotes(st.notes)
	if len(st.history) > domain.MaxQuickCalcHistory {
		st.history = st.history[:domain.MaxQuickCalcHistory]
	}

	s.mu.Lock()
	s.projects = st.projects
	for _, kind := range domain.FavoriteKinds {
		s.favorites[kind] = st.favorites[kind]
	}
	s.history = st.history
	s.notes = st.notes
	s.index.rebuild(s.projects, s.notes)
	s.mu.Unlock()

	s.loaded.Store(true)
	s.logger.Debug("store loaded",
		zap.Int("projects", len(st.projects)),
		zap.Int("notes", len(st.notes)),
		zap.Duration("elapsed", time.Since(started)),
	)
}

// readBucket decodes key into dst. Only context errors are returned; any
// other failure leaves dst untouched.
func readBucket[T any](ctx context.Context, s *Store, key string, dst *T) error {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error("reading bucket failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	v, err := decodeBucket[T](raw)
	if err != nil {
		s.logger.Warn("discarding unreadable bucket", zap.String("key", key), zap.Error(err))
		return nil
	}
	*dst = v
	return nil
}

// normalizeProjects drops nil or id-less entries left by hand-edited or
// legacy data, along with their subtrees, and makes child slices non-nil.
func normalizeProjects(in []*domain.Project) []*domain.Project {
	out := make([]*domain.Project, 0, len(in))
	for _, p := range in {
		if p == nil || p.ID == "" {
			continue
		}
		buildings := make([]*domain.Building, 0, len(p.Buildings))
		for _, b := range p.Buildings {
			if b == nil || b.ID == "" {
				continue
			}
			zones := make([]*domain.FunctionalZone, 0, len(b.FunctionalZones))
			for _, z := range b.FunctionalZones {
				if z == nil || z.ID == "" {
					continue
				}
				shutters := make([]*domain.Shutter, 0, len(z.Shutters))
				for _, sh := range z.Shutters {
					if sh != nil && sh.ID != "" {
						shutters = append(shutters, sh)
					}
				}
				z.Shutters = shutters
				zones = append(zones, z)
			}
			b.FunctionalZones = zones
			buildings = append(buildings, b)
		}
		p.Buildings = buildings
		out = append(out, p)
	}
	return out
}

func normalizeNotes(in []*domain.Note) []*domain.Note {
	out := make([]*domain.Note, 0, len(in))
	for _, n := range in {
		if n == nil || n.ID == "" {
			continue
		}
		if n.Images == nil {
			n.Images = []string{}
		}
		out = append(out, n)
	}
	return out
}

// resetLocked empties every cache. Callers hold mu or own s exclusively.
func (s *Store) resetLocked() {
	s.projects = []*domain.Project{}
	s.favorites = make(map[domain.FavoriteKind][]string, len(domain.FavoriteKinds))
	for _, kind := range domain.FavoriteKinds {
		s.favorites[kind] = []string{}
	}
	s.history = []domain.QuickCalcHistoryItem{}
	s.notes = []*domain.Note{}
	s.index.rebuild(nil, nil)
}

// ClearAllData removes every key from the backend and resets the caches. The
// next call reloads from the (now empty) backend.
func (s *Store) ClearAllData(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, AllKeys...); err != nil {
		s.logger.Error("clearing storage failed", zap.Error(err))
	}
	s.resetLocked()
	s.loaded.Store(false)
}

// persist writes the named buckets from the current cache. Callers hold mu.
// Nothing is written until a load has completed, so a cache that never saw
// the backend cannot overwrite it.
func (s *Store) persist(ctx context.Context, keys ...string) {
	if !s.loaded.Load() {
		s.logger.Warn("store not loaded, skipping persist", zap.Strings("keys", keys))
		return
	}
	entries := make(map[string]string, len(keys))
	for _, key := range keys {
		raw, err := encodeBucket(s.bucketValue(key))
		if err != nil {
			s.logger.Error("encoding bucket failed", zap.String("key", key), zap.Error(err))
			return
		}
		entries[key] = raw
	}

	var err error
	if len(entries) == 1 {
		err = s.kv.Set(ctx, keys[0], entries[keys[0]])
	} else {
		err = s.kv.SetMany(ctx, entries)
	}
	if err != nil {
		sorted := append([]string(nil), keys...)
		sort.Strings(sorted)
		s.logger.Error("persisting buckets failed", zap.Strings("keys", sorted), zap.Error(err))
	}
}

func (s *Store) bucketValue(key string) any {
	switch key {
	case KeyProjects:
		return s.projects
	case KeyQuickCalcHistory:
		return s.history
	case KeyNotes:
		return s.notes
	}
	for kind, k := range favoriteKeys {
		if k == key {
			return s.favorites[kind]
		}
	}
	return nil
}

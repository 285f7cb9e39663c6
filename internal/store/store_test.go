package store_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/kv"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/alexanderramin/shutterflow/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T, backend kv.Store) *store.Store {
	t.Helper()
	return testutil.NewTestStore(t, backend, store.WithClock(testutil.FixedClock(t0)))
}

func TestInitialize_TwiceReadsOnceAndWritesNothing(t *testing.T) {
	ctx := context.Background()
	counting := testutil.NewCountingKV(kv.NewMemory())
	st := newStore(t, counting)

	st.Initialize(ctx)
	st.Initialize(ctx)

	assert.Equal(t, len(store.AllKeys), counting.Calls("Get"))
	assert.Zero(t, counting.Writes())
	assert.Empty(t, st.GetProjects(ctx))
}

func TestInitialize_ConcurrentCallsShareOneLoad(t *testing.T) {
	ctx := context.Background()
	counting := testutil.NewCountingKV(kv.NewMemory())
	st := newStore(t, counting)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Initialize(ctx)
			_ = st.GetProjects(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, len(store.AllKeys), counting.Calls("Get"))
	assert.Zero(t, counting.Writes())
}

func TestInitialize_CancelledContextRetriesLater(t *testing.T) {
	backend := kv.NewMemory()
	seed := newStore(t, backend)
	seed.CreateProject(context.Background(), domain.ProjectInput{Name: "Existing"})

	st := newStore(t, backend)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	st.Initialize(cancelled)

	projects := st.GetProjects(context.Background())
	require.Len(t, projects, 1)
	assert.Equal(t, "Existing", projects[0].Name)
}

// blockingKV holds the first Get of key until that call's context ends.
type blockingKV struct {
	kv.Store
	key     string
	once    sync.Once
	started chan struct{}
}

func (b *blockingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == b.key {
		first := false
		b.once.Do(func() { first = true })
		if first {
			close(b.started)
			<-ctx.Done()
			return "", false, ctx.Err()
		}
	}
	return b.Store.Get(ctx, key)
}

func projectNames(projects []*domain.Project) []string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return names
}

func TestInitialize_CancelledSharedLoadKeepsPersistedProjects(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	seed := newStore(t, backend)
	seed.CreateProject(ctx, domain.ProjectInput{Name: "Existing"})

	blocking := &blockingKV{Store: backend, key: store.KeyProjects, started: make(chan struct{})}
	st := newStore(t, blocking)

	ctxA, cancelA := context.WithCancel(ctx)
	doneA := make(chan struct{})
	go func() {
		defer close(doneA)
		st.Initialize(ctxA)
	}()
	<-blocking.started

	doneB := make(chan struct{})
	go func() {
		defer close(doneB)
		st.CreateProject(ctx, domain.ProjectInput{Name: "New"})
	}()
	time.Sleep(20 * time.Millisecond)
	cancelA()
	<-doneA
	<-doneB

	assert.ElementsMatch(t, []string{"Existing", "New"}, projectNames(st.GetProjects(ctx)))

	fresh := newStore(t, backend)
	assert.ElementsMatch(t, []string{"Existing", "New"}, projectNames(fresh.GetProjects(ctx)))
}

func TestPersist_SkippedWhileUnloaded(t *testing.T) {
	backend := kv.NewMemory()
	seed := newStore(t, backend)
	seed.CreateProject(context.Background(), domain.ProjectInput{Name: "Existing"})

	counting := testutil.NewCountingKV(backend)
	st := newStore(t, counting)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	st.CreateProject(cancelled, domain.ProjectInput{Name: "Orphan"})

	assert.Zero(t, counting.Writes())
	fresh := newStore(t, backend)
	assert.Equal(t, []string{"Existing"}, projectNames(fresh.GetProjects(context.Background())))
}

func TestLoad_DropsEntitiesWithoutID(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	require.NoError(t, backend.SetMany(ctx, map[string]string{
		store.KeyProjects: `[{"name":"no id","buildings":[]},
			{"id":"p1","name":"Kept","buildings":[
				{"projectId":"p1","name":"no id","functionalZones":[]},
				{"id":"b1","projectId":"p1","name":"B","functionalZones":[
					{"id":"z1","buildingId":"b1","name":"Z","shutters":[
						{"zoneId":"z1","name":"no id","type":"high"},
						{"id":"s1","zoneId":"z1","name":"S","type":"high"}]}]}]}]`,
		store.KeyNotes: `[{"title":"no id"},{"id":"n1","title":"Kept"}]`,
	}))

	st := newStore(t, backend)

	projects := st.GetProjects(ctx)
	require.Len(t, projects, 1)
	assert.Equal(t, "Kept", projects[0].Name)
	require.Len(t, projects[0].Buildings, 1)
	assert.Equal(t, 1, projects[0].ShutterCount())
	_, ok := st.FindShutter(ctx, "s1")
	assert.True(t, ok)

	notes := st.GetNotes(ctx)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)
}

func TestLoad_RoundTripThroughBackend(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	first := newStore(t, backend)
	seeded := testutil.SeedTower(t, first)
	first.SetFavorites(ctx, domain.FavoriteShutter, []string{seeded.Shutters[0].ID})
	first.AddQuickCalcHistory(ctx, domain.QuickCalcInput{ReferenceFlow: 100, MeasuredFlow: 100, Status: "compliant"})
	first.CreateNote(ctx, domain.NoteInput{Title: "Visite", Content: "RAS", Tags: []string{"lyon"}})

	second := newStore(t, backend)

	if diff := cmp.Diff(first.GetProjects(ctx), second.GetProjects(ctx)); diff != "" {
		t.Errorf("projects mismatch after reload (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first.GetNotes(ctx), second.GetNotes(ctx)); diff != "" {
		t.Errorf("notes mismatch after reload (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{seeded.Shutters[0].ID}, second.Favorites(ctx, domain.FavoriteShutter))
	assert.Len(t, second.QuickCalcHistory(ctx), 1)

	got, ok := second.FindShutter(ctx, seeded.Shutters[2].ID)
	require.True(t, ok)
	assert.Equal(t, "Tour Horizon", got.Project.Name)
	assert.Equal(t, "Zone 1", got.Zone.Name)
}

func TestLoad_WritesVersionedEnvelope(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	st := newStore(t, backend)

	st.CreateProject(ctx, domain.ProjectInput{Name: "P"})

	raw, found, err := backend.Get(ctx, store.KeyProjects)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, strings.HasPrefix(raw, `{"version":2,"data":[`), raw)
}

func TestLoad_ReadsLegacyBareArrays(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	require.NoError(t, backend.SetMany(ctx, map[string]string{
		store.KeyProjects: `[{"id":"lq7k2x3abc","name":"Legacy","city":"Paris",
			"createdAt":"2023-05-10T08:30:00.000Z","updatedAt":"2023-05-11T08:30:00.000Z",
			"buildings":[{"id":"b1","projectId":"lq7k2x3abc","name":"B","createdAt":"2023-05-10T08:30:00.000Z",
			"functionalZones":[{"id":"z1","buildingId":"b1","name":"Z","createdAt":"2023-05-10T08:30:00.000Z",
			"shutters":[{"id":"s1","zoneId":"z1","name":"S","type":"low","referenceFlow":500,"measuredFlow":450,
			"createdAt":"2023-05-10T08:30:00.000Z","updatedAt":"2023-05-10T08:30:00.000Z"}]}]}]}]`,
		store.KeyFavoriteProjects: `["lq7k2x3abc"]`,
	}))

	st := newStore(t, backend)

	projects := st.GetProjects(ctx)
	require.Len(t, projects, 1)
	p := projects[0]
	assert.Equal(t, "Legacy", p.Name)
	assert.Equal(t, time.Date(2023, 5, 10, 8, 30, 0, 0, time.UTC), p.CreatedAt.UTC())
	assert.Equal(t, 1, p.ShutterCount())
	assert.Equal(t, []string{"lq7k2x3abc"}, st.Favorites(ctx, domain.FavoriteProject))

	ref, ok := st.FindShutter(ctx, "s1")
	require.True(t, ok)
	assert.Equal(t, domain.ShutterLow, ref.Shutter.Type)
}

func TestLoad_UnreadableBucketsLoadEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", `not json`},
		{"unknown version", `{"version":9,"data":[]}`},
		{"wrong shape", `{"version":2,"data":{"id":"x"}}`},
		{"empty string", ``},
		{"type mismatch after a good entry", `[{"id":"a","name":"ok"},{"id":5,"name":"bad"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := kv.NewMemory()
			require.NoError(t, backend.Set(ctx, store.KeyProjects, tt.raw))
			require.NoError(t, backend.Set(ctx, store.KeyNotes, tt.raw))

			st := newStore(t, backend)

			assert.Empty(t, st.GetProjects(ctx))
			assert.Empty(t, st.GetNotes(ctx))
		})
	}
}

func TestPersistenceFailure_CacheStaysAhead(t *testing.T) {
	ctx := context.Background()
	inner := kv.NewMemory()
	failing := testutil.NewFailingKV(inner)
	failing.FailWrites(true)
	st := newStore(t, failing)

	p := st.CreateProject(ctx, domain.ProjectInput{Name: "Unsaved"})
	require.NotNil(t, p)

	got, ok := st.GetProject(ctx, p.ID)
	require.True(t, ok)
	assert.Equal(t, "Unsaved", got.Name)

	fresh := newStore(t, inner)
	assert.Empty(t, fresh.GetProjects(ctx))
}

func TestLoad_ReadFailureLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	failing := testutil.NewFailingKV(kv.NewMemory())
	failing.FailReads(true)
	st := newStore(t, failing)

	assert.Empty(t, st.GetProjects(ctx))
	assert.Empty(t, st.Favorites(ctx, domain.FavoriteZone))
}

func TestClearAllData(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	st := newStore(t, backend)
	seeded := testutil.SeedTower(t, st)
	st.SetFavorites(ctx, domain.FavoriteProject, []string{seeded.Project.ID})
	st.AddQuickCalcHistory(ctx, domain.QuickCalcInput{ReferenceFlow: 1, MeasuredFlow: 1})
	st.CreateNote(ctx, domain.NoteInput{Title: "n"})

	st.ClearAllData(ctx)

	assert.Empty(t, backend.Keys())
	assert.Empty(t, st.GetProjects(ctx))
	assert.Empty(t, st.Favorites(ctx, domain.FavoriteProject))
	assert.Empty(t, st.QuickCalcHistory(ctx))
	assert.Empty(t, st.GetNotes(ctx))
	_, ok := st.FindShutter(ctx, seeded.Shutters[0].ID)
	assert.False(t, ok)
}

func TestStorageInfo(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)

	empty := st.StorageInfo(ctx)
	assert.Zero(t, empty.ProjectCount)
	assert.Zero(t, empty.ShutterCount)

	testutil.SeedTower(t, st)
	other := st.CreateProject(ctx, domain.ProjectInput{Name: "Autre"})
	b, _ := st.CreateBuilding(ctx, other.ID, domain.BuildingInput{Name: "B"})
	z, _ := st.CreateFunctionalZone(ctx, b.ID, domain.ZoneInput{Name: "Z"})
	st.CreateShutter(ctx, z.ID, domain.ShutterInput{Name: "S", ReferenceFlow: 10, MeasuredFlow: 10})

	info := st.StorageInfo(ctx)
	assert.Equal(t, 2, info.ProjectCount)
	assert.Equal(t, 4, info.ShutterCount)
	assert.Greater(t, info.Bytes, empty.Bytes)
	assert.NotEmpty(t, info.Size)
	assert.True(t, strings.HasSuffix(info.Size, "B"), info.Size)
}

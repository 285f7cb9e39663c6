package store_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/kv"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/alexanderramin/shutterflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)

	p := st.CreateProject(ctx, domain.ProjectInput{Name: "Tour A", City: "Paris"})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, t0, p.CreatedAt)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.Empty(t, p.Buildings)

	projects := st.GetProjects(ctx)
	require.Len(t, projects, 1)
	assert.Equal(t, "Tour A", projects[0].Name)
	assert.Equal(t, "Paris", projects[0].City)
}

func TestCreate_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewTestStore(t, nil)

	seen := make(map[string]bool)
	for range 50 {
		p := st.CreateProject(ctx, domain.ProjectInput{Name: "p"})
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestGetProjects_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	st.CreateProject(ctx, domain.ProjectInput{Name: "A"})

	list := st.GetProjects(ctx)
	list[0] = nil
	_ = append(list, &domain.Project{Name: "injected"})

	again := st.GetProjects(ctx)
	require.Len(t, again, 1)
	assert.Equal(t, "A", again[0].Name)
}

func TestNestedCreate_ReachableThroughGetProjects(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)

	seeded := testutil.SeedTower(t, st)

	projects := st.GetProjects(ctx)
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Buildings, 1)
	b := projects[0].Buildings[0]
	assert.Equal(t, seeded.Project.ID, b.ProjectID)
	require.Len(t, b.FunctionalZones, 1)
	z := b.FunctionalZones[0]
	assert.Equal(t, b.ID, z.BuildingID)
	require.Len(t, z.Shutters, 3)
	assert.Equal(t, "VH01", z.Shutters[0].Name)
	assert.Equal(t, z.ID, z.Shutters[0].ZoneID)
	assert.Equal(t, 1050.0, z.Shutters[0].MeasuredFlow)
}

func TestCreateChild_MissingParent(t *testing.T) {
	ctx := context.Background()
	counting := testutil.NewCountingKV(kv.NewMemory())
	st := newStore(t, counting)
	seeded := testutil.SeedTower(t, st)
	writes := counting.Writes()

	_, ok := st.CreateBuilding(ctx, "missing", domain.BuildingInput{Name: "B"})
	assert.False(t, ok)
	_, ok = st.CreateFunctionalZone(ctx, "missing", domain.ZoneInput{Name: "Z"})
	assert.False(t, ok)
	_, ok = st.CreateShutter(ctx, "missing", domain.ShutterInput{Name: "S"})
	assert.False(t, ok)

	// A zone id is not a valid building parent.
	_, ok = st.CreateFunctionalZone(ctx, seeded.Zone.ID, domain.ZoneInput{Name: "Z"})
	assert.False(t, ok)

	assert.Equal(t, writes, counting.Writes())
}

func TestUpdateProject_ShallowMergeAndTimestamp(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	p := st.CreateProject(ctx, domain.ProjectInput{Name: "Old", City: "Lyon"})
	created := p.CreatedAt

	got, ok := st.UpdateProject(ctx, p.ID, domain.ProjectPatch{Name: domain.StrPtr("New")})
	require.True(t, ok)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "Lyon", got.City)
	assert.Equal(t, created, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created))

	_, ok = st.UpdateProject(ctx, "missing", domain.ProjectPatch{Name: domain.StrPtr("x")})
	assert.False(t, ok)
}

func TestUpdateChildren(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	seeded := testutil.SeedTower(t, st)

	b, ok := st.UpdateBuilding(ctx, seeded.Building.ID, domain.BuildingPatch{Description: domain.StrPtr("R+12")})
	require.True(t, ok)
	assert.Equal(t, "Bâtiment A", b.Name)
	assert.Equal(t, "R+12", b.Description)

	z, ok := st.UpdateFunctionalZone(ctx, seeded.Zone.ID, domain.ZonePatch{Name: domain.StrPtr("Zone Nord")})
	require.True(t, ok)
	assert.Equal(t, "Zone Nord", z.Name)

	sh := seeded.Shutters[0]
	before := sh.UpdatedAt
	low := domain.ShutterLow
	updated, ok := st.UpdateShutter(ctx, sh.ID, domain.ShutterPatch{MeasuredFlow: domain.Float64Ptr(990), Type: &low})
	require.True(t, ok)
	assert.Equal(t, 990.0, updated.MeasuredFlow)
	assert.Equal(t, 1000.0, updated.ReferenceFlow)
	assert.Equal(t, domain.ShutterLow, updated.Type)
	assert.True(t, updated.UpdatedAt.After(before))

	_, ok = st.UpdateShutter(ctx, seeded.Zone.ID, domain.ShutterPatch{})
	assert.False(t, ok, "zone id must not resolve as a shutter")
}

func TestDelete_ScrubsFavorites(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	seeded := testutil.SeedTower(t, st)
	target := seeded.Shutters[1]
	st.SetFavorites(ctx, domain.FavoriteShutter, []string{seeded.Shutters[0].ID, target.ID})

	require.True(t, st.DeleteShutter(ctx, target.ID))

	assert.Equal(t, []string{seeded.Shutters[0].ID}, st.Favorites(ctx, domain.FavoriteShutter))
	_, ok := st.FindShutter(ctx, target.ID)
	assert.False(t, ok)
	zone, ok := st.FindZone(ctx, seeded.Zone.ID)
	require.True(t, ok)
	assert.Len(t, zone.Zone.Shutters, 2)
}

func TestDelete_PersistsProjectsAndFavoritesTogether(t *testing.T) {
	ctx := context.Background()
	counting := testutil.NewCountingKV(kv.NewMemory())
	st := newStore(t, counting)
	seeded := testutil.SeedTower(t, st)
	st.SetFavorites(ctx, domain.FavoriteBuilding, []string{seeded.Building.ID})
	setMany := counting.Calls("SetMany")

	require.True(t, st.DeleteBuilding(ctx, seeded.Building.ID))

	assert.Equal(t, setMany+1, counting.Calls("SetMany"))
	keys := counting.WrittenKeys()
	assert.Subset(t, keys[len(keys)-2:], []string{store.KeyProjects, store.KeyFavoriteBuildings})

	reloaded := newStore(t, counting.Store)
	assert.Empty(t, reloaded.Favorites(ctx, domain.FavoriteBuilding))
	p, ok := reloaded.GetProject(ctx, seeded.Project.ID)
	require.True(t, ok)
	assert.Empty(t, p.Buildings)
}

func TestDelete_CascadesThroughIndex(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	seeded := testutil.SeedTower(t, st)
	st.SetFavorites(ctx, domain.FavoriteShutter, []string{seeded.Shutters[0].ID})
	st.SetFavorites(ctx, domain.FavoriteProject, []string{seeded.Project.ID})

	require.True(t, st.DeleteProject(ctx, seeded.Project.ID))

	assert.Empty(t, st.GetProjects(ctx))
	assert.Empty(t, st.Favorites(ctx, domain.FavoriteProject))
	// Descendant favorites are not scrubbed.
	assert.Equal(t, []string{seeded.Shutters[0].ID}, st.Favorites(ctx, domain.FavoriteShutter))

	_, ok := st.FindBuilding(ctx, seeded.Building.ID)
	assert.False(t, ok)
	_, ok = st.FindZone(ctx, seeded.Zone.ID)
	assert.False(t, ok)
	for _, sh := range seeded.Shutters {
		_, ok = st.FindShutter(ctx, sh.ID)
		assert.False(t, ok)
	}
	assert.Zero(t, st.StorageInfo(ctx).ShutterCount)
}

func TestDelete_Missing(t *testing.T) {
	ctx := context.Background()
	counting := testutil.NewCountingKV(kv.NewMemory())
	st := newStore(t, counting)
	testutil.SeedTower(t, st)
	writes := counting.Writes()

	assert.False(t, st.DeleteProject(ctx, "missing"))
	assert.False(t, st.DeleteBuilding(ctx, "missing"))
	assert.False(t, st.DeleteFunctionalZone(ctx, "missing"))
	assert.False(t, st.DeleteShutter(ctx, "missing"))
	assert.Equal(t, writes, counting.Writes())
}

func TestDeleteFunctionalZone(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	seeded := testutil.SeedTower(t, st)
	st.SetFavorites(ctx, domain.FavoriteZone, []string{seeded.Zone.ID, "other"})

	require.True(t, st.DeleteFunctionalZone(ctx, seeded.Zone.ID))

	ref, ok := st.FindBuilding(ctx, seeded.Building.ID)
	require.True(t, ok)
	assert.Empty(t, ref.Building.FunctionalZones)
	assert.Equal(t, []string{"other"}, st.Favorites(ctx, domain.FavoriteZone))
	assert.Empty(t, st.SearchShutters(ctx, "VH01"))
}

func TestFind_ReturnsAncestors(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	seeded := testutil.SeedTower(t, st)

	b, ok := st.FindBuilding(ctx, seeded.Building.ID)
	require.True(t, ok)
	assert.Same(t, seeded.Project, b.Project)
	assert.Nil(t, b.Zone)

	z, ok := st.FindZone(ctx, seeded.Zone.ID)
	require.True(t, ok)
	assert.Same(t, seeded.Building, z.Building)
	assert.Nil(t, z.Shutter)

	s, ok := st.FindShutter(ctx, seeded.Shutters[2].ID)
	require.True(t, ok)
	assert.Same(t, seeded.Zone, s.Zone)
	assert.Same(t, seeded.Shutters[2], s.Shutter)
	assert.Same(t, seeded.Project, s.Project)

	_, ok = st.FindBuilding(ctx, seeded.Project.ID)
	assert.False(t, ok)
}

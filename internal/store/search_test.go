package store_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/alexanderramin/shutterflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(results []store.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Shutter.Name)
	}
	return out
}

func TestSearchShutters(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	testutil.SeedTower(t, st)
	other := st.CreateProject(ctx, domain.ProjectInput{Name: "Résidence Soleil", City: "Marseille"})
	b, _ := st.CreateBuilding(ctx, other.ID, domain.BuildingInput{Name: "Bâtiment A"})
	z, _ := st.CreateFunctionalZone(ctx, b.ID, domain.ZoneInput{Name: "Parking"})
	st.CreateShutter(ctx, z.ID, domain.ShutterInput{Name: "VH01", ReferenceFlow: 1, MeasuredFlow: 1})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single token across projects", "vh01", []string{"VH01", "VH01"}},
		{"conjunctive", "vh01 lyon", []string{"VH01"}},
		{"order independent", "lyon vh01", []string{"VH01"}},
		{"case insensitive accents", "BÂTIMENT parking", []string{"VH01"}},
		{"matches remarks", "encrassée", []string{"VB01"}},
		{"substring", "zone", []string{"VH01", "VB01", "VH02"}},
		{"no match", "vh01 nantes", []string{}},
		{"extra whitespace", "  vh02\t ", []string{"VH02"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(st.SearchShutters(ctx, tt.query)))
		})
	}
}

func TestSearchShutters_BlankQuery(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	testutil.SeedTower(t, st)

	assert.Empty(t, st.SearchShutters(ctx, ""))
	assert.Empty(t, st.SearchShutters(ctx, "   "))
}

func TestSearchShutters_ResultCarriesAncestry(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	seeded := testutil.SeedTower(t, st)

	results := st.SearchShutters(ctx, "vb01")
	require.Len(t, results, 1)
	r := results[0]
	assert.Same(t, seeded.Project, r.Project)
	assert.Same(t, seeded.Building, r.Building)
	assert.Same(t, seeded.Zone, r.Zone)
	assert.Same(t, seeded.Shutters[1], r.Shutter)
}

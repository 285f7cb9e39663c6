package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/service"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"long cell", "x"}, {"s"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "A          BB", lines[0])
	assert.Equal(t, "─────────  ──", lines[1])
	assert.Equal(t, "long cell  x", lines[2])
	assert.Equal(t, "s          ", lines[3])
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTree_Connectors(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "B1", Level: 1},
		{Title: "Z1", Level: 2, IsLast: true, Badge: "ok"},
		{Title: "B2", Level: 1, IsLast: true},
		{Title: "Z2", Level: 2, IsLast: true},
	}))

	assert.Equal(t, ""+
		"├─ B1\n"+
		"│  └─ Z1  ok\n"+
		"└─ B2\n"+
		"   └─ Z2\n", out)
	assert.Empty(t, RenderTree(nil))
}

func TestFlowAndRate(t *testing.T) {
	assert.Equal(t, "1,050 m³/h", Flow(1050))
	assert.Equal(t, "12.5 m³/h", Flow(12.5))
	assert.Equal(t, "66.7%", Rate(200.0/3))
}

func TestTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "09:15", Timestamp(time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC), now))
	assert.Equal(t, "2024-02-28 09:15", Timestamp(time.Date(2024, 2, 28, 9, 15, 0, 0, time.UTC), now))
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "● Conforme", stripANSI(StatusBadge(compliance.Calculate(100, 105))))
	assert.Equal(t, "● Référence invalide", stripANSI(StatusBadge(compliance.Calculate(0, 105))))
	assert.Equal(t, "-25.0%", stripANSI(Deviation(compliance.Calculate(100, 75))))
}

func sampleStatus() *service.ProjectStatus {
	sh := []*domain.Shutter{
		{ID: "s1aaaaaaaaaaaaa", Name: "VH01", Type: domain.ShutterHigh, ReferenceFlow: 1000, MeasuredFlow: 1050},
		{ID: "s2aaaaaaaaaaaaa", Name: "VB01", Type: domain.ShutterLow, ReferenceFlow: 1000, MeasuredFlow: 700},
	}
	z := &domain.FunctionalZone{ID: "z1", Name: "Zone 1", Shutters: sh}
	b := &domain.Building{ID: "b1", Name: "Bâtiment A", FunctionalZones: []*domain.FunctionalZone{z}}
	p := &domain.Project{ID: "p1", Name: "Tour Horizon", City: "Lyon", Buildings: []*domain.Building{b}}
	sum := compliance.Summarize(sh)
	return &service.ProjectStatus{
		Project: p,
		Summary: sum,
		Buildings: []service.BuildingStatus{{
			Building: b,
			Summary:  sum,
			Zones:    []service.ZoneStatus{{Zone: z, Summary: sum}},
		}},
	}
}

func TestFormatProjectStatus(t *testing.T) {
	out := stripANSI(FormatProjectStatus(sampleStatus()))

	assert.Contains(t, out, "TOUR HORIZON")
	assert.Contains(t, out, "Lyon")
	assert.Contains(t, out, "└─ Bâtiment A")
	assert.Contains(t, out, "VH01 high")
	assert.Contains(t, out, "+5.0%  ● Conforme")
	assert.Contains(t, out, "-30.0%  ● Non conforme")
	assert.Contains(t, out, "50.0%")
}

func TestFormatProjectList(t *testing.T) {
	st := sampleStatus()
	out := stripANSI(FormatProjectList([]ProjectRow{
		{Project: st.Project, Summary: st.Summary, Favorite: true},
		{Project: &domain.Project{ID: "p2", Name: "Vide"}},
	}))

	assert.Contains(t, out, "★")
	assert.Contains(t, out, "Tour Horizon")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "--")
	assert.Contains(t, stripANSI(FormatProjectList(nil)), "No projects yet")
}

func TestFormatSearchResults(t *testing.T) {
	st := sampleStatus()
	p := st.Project
	b := p.Buildings[0]
	z := b.FunctionalZones[0]
	out := stripANSI(FormatSearchResults([]store.SearchResult{{Project: p, Building: b, Zone: z, Shutter: z.Shutters[1]}}))

	assert.Contains(t, out, "VB01")
	assert.Contains(t, out, "Tour Horizon")
	assert.Contains(t, out, "● Non conforme")
	assert.Contains(t, stripANSI(FormatSearchResults(nil)), "No matching shutters")
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	out := stripANSI(FormatHistory([]domain.QuickCalcHistoryItem{
		{ReferenceFlow: 100, MeasuredFlow: 115, Deviation: 15, Status: "acceptable", Timestamp: now},
	}, now))

	assert.Contains(t, out, "+15.0%")
	assert.Contains(t, out, "● Acceptable")
	assert.Contains(t, out, "18:00")
}

func TestFormatNote(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	out := stripANSI(FormatNote(&domain.Note{
		ID: "n1", Title: "Visite", Tags: []string{"a", "b"}, Content: "RAS",
		CreatedAt: now, UpdatedAt: now, Images: []string{strings.Repeat("x", 2048)},
	}, now))

	assert.Contains(t, out, "VISITE")
	assert.Contains(t, out, "a, b")
	assert.Contains(t, out, "Image 0")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "RAS")
}

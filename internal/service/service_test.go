package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/importer"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/alexanderramin/shutterflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportDay = time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

func seededStore(t *testing.T) (*store.Store, testutil.Seeded) {
	t.Helper()
	st := testutil.NewTestStore(t, nil)
	seeded := testutil.SeedTower(t, st)
	ctx := context.Background()
	st.CreateNote(ctx, domain.NoteInput{Title: "Visite Lyon", Content: "Accès par le parking"})
	st.CreateNote(ctx, domain.NoteInput{Title: "Sans rapport", Content: "Marseille"})
	return st, seeded
}

func newTransfer(st ProjectStore, observers ...UseCaseObserver) TransferService {
	return NewTransferService(st, TransferConfig{
		AppVersion: "test",
		ExportedBy: "tester",
		Now:        func() time.Time { return exportDay },
	}, observers...)
}

func TestExportProject(t *testing.T) {
	ctx := context.Background()
	st, seeded := seededStore(t)
	dir := filepath.Join(t.TempDir(), "exports")

	res, err := newTransfer(st).ExportProject(ctx, seeded.Project.ID, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Tour_Horizon_2024-03-01.json"), res.Path)
	assert.Equal(t, 1, res.RelatedNotes)

	doc, err := importer.LoadDocument(res.Path)
	require.NoError(t, err)
	assert.Equal(t, importer.FormatVersion, doc.Version)
	assert.Equal(t, "tester", doc.Metadata.ExportedBy)
	assert.Equal(t, "test", doc.Metadata.AppVersion)
	assert.NotEmpty(t, doc.Metadata.Platform)
	assert.Equal(t, seeded.Project.ID, doc.Project.ID)
	require.Len(t, doc.RelatedNotes, 1)
	assert.Equal(t, "Visite Lyon", doc.RelatedNotes[0].Title)
}

func TestExportProject_NotFound(t *testing.T) {
	st, _ := seededStore(t)

	_, err := newTransfer(st).ExportProject(context.Background(), "missing", t.TempDir())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestImport_RoundTripAssignsFreshIDs(t *testing.T) {
	ctx := context.Background()
	st, seeded := seededStore(t)
	svc := newTransfer(st)
	exported, err := svc.ExportProject(ctx, seeded.Project.ID, t.TempDir())
	require.NoError(t, err)

	res, err := svc.ImportFile(ctx, exported.Path)
	require.NoError(t, err)

	assert.NotEqual(t, seeded.Project.ID, res.Project.ID)
	assert.Equal(t, "Tour Horizon", res.Project.Name)
	assert.Equal(t, 3, res.ShutterCount)
	require.Len(t, res.Notes, 1)
	assert.Len(t, st.GetProjects(ctx), 2)
	assert.Len(t, st.GetNotes(ctx), 3)
}

func TestImport_ValidationFailure(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewTestStore(t, nil)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"relatedNotes":[]}`), 0o644))

	_, err := newTransfer(st).ImportFile(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "project is required")
	assert.Contains(t, err.Error(), "version is required")
	assert.Empty(t, st.GetProjects(ctx))
}

func TestImport_MissingFile(t *testing.T) {
	st := testutil.NewTestStore(t, nil)
	_, err := newTransfer(st).ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "loading import file")
}

func TestProjectStatus_Rollup(t *testing.T) {
	ctx := context.Background()
	st, seeded := seededStore(t)

	status, err := NewStatusService(st).ProjectStatus(ctx, seeded.Project.ID)
	require.NoError(t, err)

	want := compliance.Summary{Total: 3, Compliant: 1, Acceptable: 1, NonCompliant: 1}
	assert.Equal(t, want, status.Summary)
	require.Len(t, status.Buildings, 1)
	assert.Equal(t, want, status.Buildings[0].Summary)
	require.Len(t, status.Buildings[0].Zones, 1)
	assert.Equal(t, want, status.Buildings[0].Zones[0].Summary)

	_, err = NewStatusService(st).ProjectStatus(ctx, "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestWriteProjectReport(t *testing.T) {
	ctx := context.Background()
	st, seeded := seededStore(t)
	path := filepath.Join(t.TempDir(), "rapport.xlsx")

	res, err := NewReportService(st).WriteProjectReport(ctx, seeded.Project.ID, path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 3, res.Summary.Total)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SummarySheet, MeasurementsSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Projet", "Tour Horizon"}, summary[0])
	assert.Equal(t, []string{"Taux de conformité", "66.7%"}, summary[8])

	rows, err := f.GetRows(MeasurementsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Volet", rows[0][2])
	assert.Equal(t, []string{"Bâtiment A", "Zone 1", "VH01", "high", "1000", "1050", "+5.0%", "Conforme"}, rows[1])
	assert.Equal(t, "Acceptable", rows[2][7])
	assert.Equal(t, "-30.0%", rows[3][6])
	assert.Equal(t, "Non conforme", rows[3][7])
}

func TestWriteProjectReport_NotFound(t *testing.T) {
	st := testutil.NewTestStore(t, nil)
	path := filepath.Join(t.TempDir(), "rapport.xlsx")

	_, err := NewReportService(st).WriteProjectReport(context.Background(), "missing", path)
	assert.ErrorIs(t, err, ErrProjectNotFound)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestQuickCalc_RecordsHistory(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewTestStore(t, nil)
	svc := NewQuickCalcService(st)

	res, item := svc.Calculate(ctx, 100, 100)

	assert.Equal(t, compliance.StatusCompliant, res.Status)
	assert.Equal(t, "+0.0%", compliance.FormatDeviation(res.Deviation))
	assert.Equal(t, string(compliance.StatusCompliant), item.Status)
	assert.Equal(t, compliance.ColorCompliant, item.Color)

	history := st.QuickCalcHistory(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, item.ID, history[0].ID)

	res, _ = svc.Calculate(ctx, 0, 50)
	assert.Equal(t, compliance.LabelInvalidReference, res.Label)
	assert.True(t, strings.HasPrefix(st.QuickCalcHistory(ctx)[0].Status, "non"))
}

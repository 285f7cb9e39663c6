package service

import (
	"context"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/importer"
)

// ProjectStore is the slice of the project store the services read and write.
// *store.Store satisfies it.
type ProjectStore interface {
	GetProject(ctx context.Context, id string) (*domain.Project, bool)
	GetNotes(ctx context.Context) []*domain.Note
	ImportProject(ctx context.Context, p *domain.Project) *domain.Project
	ImportNotes(ctx context.Context, notes []*domain.Note) []*domain.Note
	AddQuickCalcHistory(ctx context.Context, in domain.QuickCalcInput) domain.QuickCalcHistoryItem
}

// ExportResult describes a written export file.
type ExportResult struct {
	Path         string
	Document     *importer.ExportDocument
	RelatedNotes int
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project      *domain.Project
	Notes        []*domain.Note
	ShutterCount int
}

type TransferService interface {
	ExportProject(ctx context.Context, projectID, dir string) (*ExportResult, error)
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportDocument(ctx context.Context, doc *importer.ExportDocument) (*ImportResult, error)
}

// ReportResult describes a written workbook.
type ReportResult struct {
	Path    string
	Summary compliance.Summary
	Rows    int
}

type ReportService interface {
	WriteProjectReport(ctx context.Context, projectID, path string) (*ReportResult, error)
}

type QuickCalcService interface {
	// Calculate evaluates the flows and records the result in the history.
	Calculate(ctx context.Context, referenceFlow, measuredFlow float64) (compliance.Result, domain.QuickCalcHistoryItem)
}

// ZoneStatus is the compliance rollup of one functional zone.
type ZoneStatus struct {
	Zone    *domain.FunctionalZone
	Summary compliance.Summary
}

// BuildingStatus is the compliance rollup of one building.
type BuildingStatus struct {
	Building *domain.Building
	Summary  compliance.Summary
	Zones    []ZoneStatus
}

// ProjectStatus is the compliance rollup of a project tree.
type ProjectStatus struct {
	Project   *domain.Project
	Summary   compliance.Summary
	Buildings []BuildingStatus
}

type StatusService interface {
	ProjectStatus(ctx context.Context, projectID string) (*ProjectStatus, error)
}

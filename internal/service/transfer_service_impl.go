package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/alexanderramin/shutterflow/internal/importer"
)

// TransferConfig carries the export metadata and clock.
type TransferConfig struct {
	AppVersion string
	ExportedBy string
	Now        func() time.Time
}

type transferService struct {
	store    ProjectStore
	cfg      TransferConfig
	observer UseCaseObserver
}

func NewTransferService(st ProjectStore, cfg TransferConfig, observers ...UseCaseObserver) TransferService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &transferService{
		store:    st,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *transferService) ExportProject(ctx context.Context, projectID, dir string) (result *ExportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() { observe(ctx, s.observer, "export-project", startedAt, fields, err) }()

	project, ok := s.store.GetProject(ctx, projectID)
	if !ok {
		return nil, projectNotFound(projectID)
	}

	now := s.cfg.Now()
	doc := importer.BuildDocument(project, s.store.GetNotes(ctx), importer.Metadata{
		AppVersion: s.cfg.AppVersion,
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		ExportedBy: s.cfg.ExportedBy,
	}, now)

	if dir == "" {
		dir = "."
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, importer.ExportFileName(project.Name, now))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating export file: %w", err)
	}
	if err = importer.WriteDocument(f, doc); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing export: %w", err)
	}
	if err = f.Close(); err != nil {
		return nil, fmt.Errorf("closing export file: %w", err)
	}

	fields["path"] = path
	fields["related_notes"] = len(doc.RelatedNotes)
	return &ExportResult{Path: path, Document: doc, RelatedNotes: len(doc.RelatedNotes)}, nil
}

func (s *transferService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	doc, err := importer.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportDocument(ctx, doc)
}

func (s *transferService) ImportDocument(ctx context.Context, doc *importer.ExportDocument) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "import-project", startedAt, fields, err) }()

	if errs := importer.ValidateDocument(doc); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	project := s.store.ImportProject(ctx, doc.Project)
	notes := s.store.ImportNotes(ctx, doc.RelatedNotes)

	fields["project_id"] = project.ID
	fields["notes"] = len(notes)
	return &ImportResult{
		Project:      project,
		Notes:        notes,
		ShutterCount: project.ShutterCount(),
	}, nil
}

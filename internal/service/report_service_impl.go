package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SummarySheet      = "Synthèse"
	MeasurementsSheet = "Mesures"
)

var measurementHeaders = []any{
	"Bâtiment", "Zone", "Volet", "Type", "Débit de référence (m³/h)",
	"Débit mesuré (m³/h)", "Écart", "Statut",
}

type reportService struct {
	store    ProjectStore
	status   StatusService
	observer UseCaseObserver
}

func NewReportService(st ProjectStore, observers ...UseCaseObserver) ReportService {
	return &reportService{
		store:    st,
		status:   NewStatusService(st),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) WriteProjectReport(ctx context.Context, projectID, path string) (result *ReportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "path": path}
	defer func() { observe(ctx, s.observer, "project-report", startedAt, fields, err) }()

	status, err := s.status.ProjectStatus(ctx, projectID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newReportStyles(f)
	if err != nil {
		return nil, fmt.Errorf("creating styles: %w", err)
	}
	if err = f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if err = writeSummarySheet(f, styles, status); err != nil {
		return nil, fmt.Errorf("writing %s: %w", SummarySheet, err)
	}
	rows, err := writeMeasurementsSheet(f, styles, status)
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", MeasurementsSheet, err)
	}

	if err = f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("saving workbook: %w", err)
	}
	fields["rows"] = rows
	return &ReportResult{Path: path, Summary: status.Summary, Rows: rows}, nil
}

type reportStyles struct {
	header int
	status map[compliance.Status]int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return reportStyles{}, err
	}
	st := reportStyles{header: header, status: make(map[compliance.Status]int)}
	for _, s := range []compliance.Status{compliance.StatusCompliant, compliance.StatusAcceptable, compliance.StatusNonCompliant} {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{compliance.Color(s)}},
		})
		if err != nil {
			return reportStyles{}, err
		}
		st.status[s] = id
	}
	return st, nil
}

func writeSummarySheet(f *excelize.File, styles reportStyles, status *ProjectStatus) error {
	p := status.Project
	dateOf := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	rows := [][]any{
		{"Projet", p.Name},
		{"Ville", p.City},
		{"Début", dateOf(p.StartDate)},
		{"Fin", dateOf(p.EndDate)},
		{"Volets", status.Summary.Total},
		{compliance.Label(compliance.StatusCompliant), status.Summary.Compliant},
		{compliance.Label(compliance.StatusAcceptable), status.Summary.Acceptable},
		{compliance.Label(compliance.StatusNonCompliant), status.Summary.NonCompliant},
		{"Taux de conformité", fmt.Sprintf("%.1f%%", status.Summary.Rate())},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, styles.header); err != nil {
			return err
		}
	}

	start := len(rows) + 2
	header := []any{"Bâtiment", "Volets", "Conformes", "Acceptables", "Non conformes", "Taux"}
	cell, _ := excelize.CoordinatesToCellName(1, start)
	if err := f.SetSheetRow(SummarySheet, cell, &header); err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(len(header), start)
	if err := f.SetCellStyle(SummarySheet, cell, end, styles.header); err != nil {
		return err
	}
	for i, b := range status.Buildings {
		row := []any{
			b.Building.Name, b.Summary.Total, b.Summary.Compliant,
			b.Summary.Acceptable, b.Summary.NonCompliant, fmt.Sprintf("%.1f%%", b.Summary.Rate()),
		}
		cell, _ := excelize.CoordinatesToCellName(1, start+1+i)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 24)
}

func writeMeasurementsSheet(f *excelize.File, styles reportStyles, status *ProjectStatus) (int, error) {
	if _, err := f.NewSheet(MeasurementsSheet); err != nil {
		return 0, err
	}
	if err := f.SetSheetRow(MeasurementsSheet, "A1", &measurementHeaders); err != nil {
		return 0, err
	}
	last, _ := excelize.CoordinatesToCellName(len(measurementHeaders), 1)
	if err := f.SetCellStyle(MeasurementsSheet, "A1", last, styles.header); err != nil {
		return 0, err
	}

	n := 0
	for _, b := range status.Buildings {
		for _, z := range b.Zones {
			for _, sh := range z.Zone.Shutters {
				res := compliance.Calculate(sh.ReferenceFlow, sh.MeasuredFlow)
				row := []any{
					b.Building.Name, z.Zone.Name, sh.Name, string(sh.Type),
					sh.ReferenceFlow, sh.MeasuredFlow,
					compliance.FormatDeviation(res.Deviation), res.Label,
				}
				n++
				cell, _ := excelize.CoordinatesToCellName(1, n+1)
				if err := f.SetSheetRow(MeasurementsSheet, cell, &row); err != nil {
					return 0, err
				}
				statusCell, _ := excelize.CoordinatesToCellName(len(row), n+1)
				if err := f.SetCellStyle(MeasurementsSheet, statusCell, statusCell, styles.status[res.Status]); err != nil {
					return 0, err
				}
			}
		}
	}
	if err := f.SetColWidth(MeasurementsSheet, "A", "H", 18); err != nil {
		return 0, err
	}
	return n, nil
}

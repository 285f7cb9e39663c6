package service

import (
	"context"

	"github.com/alexanderramin/shutterflow/internal/compliance"
)

type statusService struct {
	store ProjectStore
}

func NewStatusService(st ProjectStore) StatusService {
	return &statusService{store: st}
}

// ProjectStatus evaluates every shutter of the project and rolls the results
// up per zone, per building and for the whole project.
func (s *statusService) ProjectStatus(ctx context.Context, projectID string) (*ProjectStatus, error) {
	project, ok := s.store.GetProject(ctx, projectID)
	if !ok {
		return nil, projectNotFound(projectID)
	}

	out := &ProjectStatus{Project: project}
	for _, b := range project.Buildings {
		bs := BuildingStatus{Building: b}
		for _, z := range b.FunctionalZones {
			zs := ZoneStatus{Zone: z, Summary: compliance.Summarize(z.Shutters)}
			bs.Summary = mergeSummary(bs.Summary, zs.Summary)
			bs.Zones = append(bs.Zones, zs)
		}
		out.Summary = mergeSummary(out.Summary, bs.Summary)
		out.Buildings = append(out.Buildings, bs)
	}
	return out, nil
}

func mergeSummary(a, b compliance.Summary) compliance.Summary {
	return compliance.Summary{
		Total:        a.Total + b.Total,
		Compliant:    a.Compliant + b.Compliant,
		Acceptable:   a.Acceptable + b.Acceptable,
		NonCompliant: a.NonCompliant + b.NonCompliant,
	}
}

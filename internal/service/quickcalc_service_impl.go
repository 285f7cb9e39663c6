package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/domain"
)

type quickCalcService struct {
	store    ProjectStore
	observer UseCaseObserver
}

func NewQuickCalcService(st ProjectStore, observers ...UseCaseObserver) QuickCalcService {
	return &quickCalcService{store: st, observer: useCaseObserverOrNoop(observers)}
}

func (s *quickCalcService) Calculate(ctx context.Context, referenceFlow, measuredFlow float64) (compliance.Result, domain.QuickCalcHistoryItem) {
	startedAt := time.Now().UTC()
	result := compliance.Calculate(referenceFlow, measuredFlow)
	item := s.store.AddQuickCalcHistory(ctx, domain.QuickCalcInput{
		ReferenceFlow: referenceFlow,
		MeasuredFlow:  measuredFlow,
		Deviation:     result.Deviation,
		Status:        string(result.Status),
		Color:         result.Color,
	})
	observe(ctx, s.observer, "quick-calc", startedAt, map[string]any{"status": string(result.Status)}, nil)
	return result, item
}

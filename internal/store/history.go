package store

import (
	"context"
	"slices"

	"github.com/alexanderramin/shutterflow/internal/domain"
)

// QuickCalcHistory returns the retained calculations, newest first.
func (s *Store) QuickCalcHistory(ctx context.Context) []domain.QuickCalcHistoryItem {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// AddQuickCalcHistory prepends a calculation and drops anything past
// domain.MaxQuickCalcHistory.
func (s *Store) AddQuickCalcHistory(ctx context.Context, in domain.QuickCalcInput) domain.QuickCalcHistoryItem {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item := domain.QuickCalcHistoryItem{
		ID:            domain.NewID(now),
		ReferenceFlow: in.ReferenceFlow,
		MeasuredFlow:  in.MeasuredFlow,
		Deviation:     in.Deviation,
		Status:        in.Status,
		Color:         in.Color,
		Timestamp:     now,
	}
	history := make([]domain.QuickCalcHistoryItem, 0, domain.MaxQuickCalcHistory)
	history = append(history, item)
	history = append(history, s.history...)
	if len(history) > domain.MaxQuickCalcHistory {
		history = history[:domain.MaxQuickCalcHistory]
	}
	s.history = history
	s.persist(ctx, KeyQuickCalcHistory)
	return item
}

func (s *Store) ClearQuickCalcHistory(ctx context.Context) {
	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = []domain.QuickCalcHistoryItem{}
	s.persist(ctx, KeyQuickCalcHistory)
}

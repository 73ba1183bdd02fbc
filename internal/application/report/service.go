package report

import (
	"context"

	"github.com/salesbridge/backend/internal/domain/resolution"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// Service answers read queries over the published fact batch. All
// numbers come straight from the repository aggregations; nothing here
// recomputes resolution.
type Service struct {
	factRepo resolution.FactRepository
}

// NewService creates a new report Service
func NewService(factRepo resolution.FactRepository) *Service {
	return &Service{factRepo: factRepo}
}

// Summary returns headline totals
func (s *Service) Summary(ctx context.Context, query resolution.FactQuery) (*resolution.SummaryTotals, error) {
	return s.factRepo.Summary(ctx, query)
}

// Daily returns per-day totals
func (s *Service) Daily(ctx context.Context, query resolution.FactQuery) ([]*resolution.DailyTotals, error) {
	return s.factRepo.TotalsByDay(ctx, query)
}

// ByCategory returns totals grouped by product category
func (s *Service) ByCategory(ctx context.Context, query resolution.FactQuery) ([]*resolution.GroupTotals, error) {
	return s.factRepo.TotalsByCategory(ctx, query)
}

// BySKU returns totals grouped by canonical SKU, largest first
func (s *Service) BySKU(ctx context.Context, query resolution.FactQuery, limit int) ([]*resolution.GroupTotals, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.factRepo.TotalsBySKU(ctx, query, limit)
}

// ByMatchType returns totals grouped by resolution match type
func (s *Service) ByMatchType(ctx context.Context, query resolution.FactQuery) ([]*resolution.GroupTotals, error) {
	return s.factRepo.TotalsByMatchType(ctx, query)
}

// Unmapped lists unresolved identifiers ordered by sales impact
func (s *Service) Unmapped(ctx context.Context, query resolution.FactQuery, limit int) ([]*resolution.UnmappedIdentifier, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.factRepo.Unmapped(ctx, query, limit)
}

// Facts lists individual published facts
func (s *Service) Facts(ctx context.Context, query resolution.FactQuery, filter shared.Filter) ([]*resolution.SalesFact, int64, error) {
	page, err := s.factRepo.FindAll(ctx, query, filter)
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

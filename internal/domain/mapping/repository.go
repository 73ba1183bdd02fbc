package mapping

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// RuleRepository defines the persistence contract for mapping rules
type RuleRepository interface {
	Save(ctx context.Context, rule *Rule) error
	FindByID(ctx context.Context, id uuid.UUID) (*Rule, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Rule], error)
	FindAllActive(ctx context.Context) ([]*Rule, error)
	// FindActiveExact returns active exact rules for the given pattern
	// and source filter, used to enforce uniqueness at the write boundary.
	FindActiveExact(ctx context.Context, sourcePattern, sourceFilter string) ([]*Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

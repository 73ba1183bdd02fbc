package channel

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// LineQuery narrows order line listings for reporting and refreshes
type LineQuery struct {
	Channel            string
	OrderStatuses      []OrderStatus
	AcceptanceStatuses []AcceptanceStatus
	From               *time.Time
	To                 *time.Time
}

// OrderLineRepository defines the persistence contract for order lines
type OrderLineRepository interface {
	Save(ctx context.Context, line *OrderLine) error
	SaveBatch(ctx context.Context, lines []*OrderLine) error
	FindByID(ctx context.Context, id uuid.UUID) (*OrderLine, error)
	FindByOrderID(ctx context.Context, orderID string) ([]*OrderLine, error)
	FindAll(ctx context.Context, query LineQuery, filter shared.Filter) (shared.Paginated[*OrderLine], error)
	// FindEligible streams all lines satisfying the query ordered by
	// creation time, for refresh runs. No pagination is applied.
	FindEligible(ctx context.Context, query LineQuery) ([]*OrderLine, error)
	// FindEligibleSince returns eligible lines created after the
	// watermark, for incremental refreshes.
	FindEligibleSince(ctx context.Context, query LineQuery, since time.Time) ([]*OrderLine, error)
	Update(ctx context.Context, line *OrderLine) error
	Count(ctx context.Context, query LineQuery) (int64, error)
}

package resolution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesbridge/backend/internal/domain/shared"
)

// FactQuery narrows fact listings and aggregations. All aggregations
// operate on the currently published batch only.
type FactQuery struct {
	Channel     string
	MatchType   MatchType
	Category    string
	SKUPrimario string
	From        *time.Time
	To          *time.Time
}

// SummaryTotals is the headline aggregate over published facts
type SummaryTotals struct {
	FactCount     int64           `json:"fact_count"`
	MappedCount   int64           `json:"mapped_count"`
	UnmappedCount int64           `json:"unmapped_count"`
	TotalUnits    int64           `json:"total_units"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// GroupTotals is one row of a grouped aggregation
type GroupTotals struct {
	Key          string          `json:"key"`
	FactCount    int64           `json:"fact_count"`
	TotalUnits   int64           `json:"total_units"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DailyTotals is one day of aggregated sales
type DailyTotals struct {
	Date         time.Time       `json:"date"`
	FactCount    int64           `json:"fact_count"`
	TotalUnits   int64           `json:"total_units"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// UnmappedIdentifier is an unresolved raw identifier with its impact
type UnmappedIdentifier struct {
	RawIdentifier string          `json:"raw_identifier"`
	Channel       string          `json:"channel"`
	LineCount     int64           `json:"line_count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// FactRepository defines the persistence contract for the sales fact
// store. Writes go through batch operations so that readers only ever
// observe a complete batch.
type FactRepository interface {
	// PublishBatch atomically inserts the facts under the given batch,
	// repoints the published-batch pointer at it and removes superseded
	// batches. Readers see either the previous batch or the new one in
	// full.
	PublishBatch(ctx context.Context, batchID uuid.UUID, facts []*SalesFact) error
	// AppendToBatch adds facts for new lines to the currently published
	// batch, replacing any facts those lines already had.
	AppendToBatch(ctx context.Context, batchID uuid.UUID, facts []*SalesFact) error
	CurrentBatchID(ctx context.Context) (uuid.UUID, error)

	FindAll(ctx context.Context, query FactQuery, filter shared.Filter) (shared.Paginated[*SalesFact], error)
	FindByLineID(ctx context.Context, lineID uuid.UUID) (*SalesFact, error)

	Summary(ctx context.Context, query FactQuery) (*SummaryTotals, error)
	TotalsByDay(ctx context.Context, query FactQuery) ([]*DailyTotals, error)
	TotalsByCategory(ctx context.Context, query FactQuery) ([]*GroupTotals, error)
	TotalsBySKU(ctx context.Context, query FactQuery, limit int) ([]*GroupTotals, error)
	TotalsByMatchType(ctx context.Context, query FactQuery) ([]*GroupTotals, error)
	Unmapped(ctx context.Context, query FactQuery, limit int) ([]*UnmappedIdentifier, error)
}

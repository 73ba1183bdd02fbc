package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salesbridge/backend/internal/domain/resolution"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// RefreshPointer is the single row naming the currently published fact
// batch. Readers scope every query to the pointed-at batch, so a
// refresh becomes visible in one pointer update.
type RefreshPointer struct {
	ID          int       `gorm:"primaryKey"`
	BatchID     uuid.UUID `gorm:"type:uuid;not null"`
	PublishedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RefreshPointer) TableName() string {
	return "refresh_pointers"
}

const refreshPointerID = 1

// GormFactRepository implements resolution.FactRepository using GORM
type GormFactRepository struct {
	db *gorm.DB
}

// NewGormFactRepository creates a new GormFactRepository
func NewGormFactRepository(db *gorm.DB) *GormFactRepository {
	return &GormFactRepository{db: db}
}

// PublishBatch inserts the facts, repoints the pointer and removes
// superseded batches in one transaction.
func (r *GormFactRepository) PublishBatch(ctx context.Context, batchID uuid.UUID, facts []*resolution.SalesFact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(facts) > 0 {
			if err := tx.CreateInBatches(facts, 500).Error; err != nil {
				return err
			}
		}

		pointer := RefreshPointer{
			ID:          refreshPointerID,
			BatchID:     batchID,
			PublishedAt: time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"batch_id", "published_at"}),
		}).Create(&pointer).Error; err != nil {
			return err
		}

		return tx.Where("batch_id <> ?", batchID).
			Delete(&resolution.SalesFact{}).Error
	})
}

// AppendToBatch adds facts for new lines to the published batch,
// replacing any facts those lines already had. The batch must still be
// the published one; a superseded batch yields ErrConcurrencyConflict.
func (r *GormFactRepository) AppendToBatch(ctx context.Context, batchID uuid.UUID, facts []*resolution.SalesFact) error {
	if len(facts) == 0 {
		return nil
	}
	lineIDs := make([]uuid.UUID, 0, len(facts))
	for _, f := range facts {
		f.BatchID = batchID
		lineIDs = append(lineIDs, f.LineID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check inside the transaction so an append racing a full
		// refresh cannot strand facts under a superseded batch.
		var pointer RefreshPointer
		if err := tx.First(&pointer, "id = ?", refreshPointerID).Error; err != nil {
			return err
		}
		if pointer.BatchID != batchID {
			return shared.ErrConcurrencyConflict
		}
		if err := tx.Where("batch_id = ? AND line_id IN ?", batchID, lineIDs).
			Delete(&resolution.SalesFact{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(facts, 500).Error
	})
}

// CurrentBatchID returns the published batch, or uuid.Nil when no
// refresh has run yet.
func (r *GormFactRepository) CurrentBatchID(ctx context.Context) (uuid.UUID, error) {
	var pointer RefreshPointer
	if err := r.db.WithContext(ctx).First(&pointer, "id = ?", refreshPointerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return pointer.BatchID, nil
}

// FindAll lists published facts matching the query
func (r *GormFactRepository) FindAll(ctx context.Context, query resolution.FactQuery, filter shared.Filter) (shared.Paginated[*resolution.SalesFact], error) {
	var result shared.Paginated[*resolution.SalesFact]

	q := r.scoped(ctx, query)
	if err := q.Count(&result.Total).Error; err != nil {
		return result, err
	}

	var facts []*resolution.SalesFact
	if err := applyFilter(q, filter).Find(&facts).Error; err != nil {
		return result, err
	}

	result.Items = facts
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}

// FindByLineID returns the published fact for one order line
func (r *GormFactRepository) FindByLineID(ctx context.Context, lineID uuid.UUID) (*resolution.SalesFact, error) {
	var fact resolution.SalesFact
	if err := r.scoped(ctx, resolution.FactQuery{}).
		Where("line_id = ?", lineID).
		First(&fact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &fact, nil
}

// Summary aggregates headline totals over published facts
func (r *GormFactRepository) Summary(ctx context.Context, query resolution.FactQuery) (*resolution.SummaryTotals, error) {
	var totals resolution.SummaryTotals
	err := r.scoped(ctx, query).
		Select(`COUNT(*) AS fact_count,
			COALESCE(SUM(CASE WHEN match_type <> 'unmapped' THEN 1 ELSE 0 END), 0) AS mapped_count,
			COALESCE(SUM(CASE WHEN match_type = 'unmapped' THEN 1 ELSE 0 END), 0) AS unmapped_count,
			COALESCE(SUM(units_sold), 0) AS total_units,
			COALESCE(SUM(revenue), 0) AS total_revenue`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// TotalsByDay aggregates published facts per order date
func (r *GormFactRepository) TotalsByDay(ctx context.Context, query resolution.FactQuery) ([]*resolution.DailyTotals, error) {
	var rows []*resolution.DailyTotals
	err := r.scoped(ctx, query).
		Select(`DATE(order_date) AS date,
			COUNT(*) AS fact_count,
			COALESCE(SUM(units_sold), 0) AS total_units,
			COALESCE(SUM(revenue), 0) AS total_revenue`).
		Group("DATE(order_date)").
		Order("DATE(order_date) ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalsByCategory aggregates published facts per product category
func (r *GormFactRepository) TotalsByCategory(ctx context.Context, query resolution.FactQuery) ([]*resolution.GroupTotals, error) {
	return r.groupTotals(ctx, query, "category", 0)
}

// TotalsBySKU aggregates published facts per canonical SKU
func (r *GormFactRepository) TotalsBySKU(ctx context.Context, query resolution.FactQuery, limit int) ([]*resolution.GroupTotals, error) {
	return r.groupTotals(ctx, query, "sku_primario", limit)
}

// TotalsByMatchType aggregates published facts per match type
func (r *GormFactRepository) TotalsByMatchType(ctx context.Context, query resolution.FactQuery) ([]*resolution.GroupTotals, error) {
	return r.groupTotals(ctx, query, "match_type", 0)
}

func (r *GormFactRepository) groupTotals(ctx context.Context, query resolution.FactQuery, column string, limit int) ([]*resolution.GroupTotals, error) {
	q := r.scoped(ctx, query).
		Select(column + ` AS key,
			COUNT(*) AS fact_count,
			COALESCE(SUM(units_sold), 0) AS total_units,
			COALESCE(SUM(revenue), 0) AS total_revenue`).
		Group(column).
		Order("total_units DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []*resolution.GroupTotals
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Unmapped lists unresolved identifiers by sales impact
func (r *GormFactRepository) Unmapped(ctx context.Context, query resolution.FactQuery, limit int) ([]*resolution.UnmappedIdentifier, error) {
	q := r.scoped(ctx, query).
		Where("match_type = ?", resolution.MatchTypeUnmapped).
		Select(`raw_identifier,
			channel,
			COUNT(*) AS line_count,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(revenue), 0) AS total_revenue`).
		Group("raw_identifier, channel").
		Order("total_quantity DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []*resolution.UnmappedIdentifier
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// scoped restricts a query to the published batch via the pointer row,
// keeping reads atomic with concurrent batch swaps.
func (r *GormFactRepository) scoped(ctx context.Context, query resolution.FactQuery) *gorm.DB {
	pointer := r.db.Table("refresh_pointers").
		Select("batch_id").
		Where("id = ?", refreshPointerID)

	q := r.db.WithContext(ctx).Model(&resolution.SalesFact{}).
		Where("batch_id = (?)", pointer)

	if query.Channel != "" {
		q = q.Where("channel = ?", query.Channel)
	}
	if query.MatchType != "" {
		q = q.Where("match_type = ?", query.MatchType)
	}
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}
	if query.SKUPrimario != "" {
		q = q.Where("sku_primario = ?", query.SKUPrimario)
	}
	if query.From != nil {
		q = q.Where("order_date >= ?", *query.From)
	}
	if query.To != nil {
		q = q.Where("order_date < ?", *query.To)
	}
	return q
}

var _ resolution.FactRepository = (*GormFactRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesbridge/backend/internal/domain/channel"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// GormOrderLineRepository implements channel.OrderLineRepository using GORM
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewGormOrderLineRepository creates a new GormOrderLineRepository
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// Save persists a new order line
func (r *GormOrderLineRepository) Save(ctx context.Context, line *channel.OrderLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// SaveBatch persists a batch of order lines in one insert
func (r *GormOrderLineRepository) SaveBatch(ctx context.Context, lines []*channel.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(lines, 500).Error
}

// FindByID finds an order line by its ID
func (r *GormOrderLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.OrderLine, error) {
	var line channel.OrderLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindByOrderID finds all lines of a channel order
func (r *GormOrderLineRepository) FindByOrderID(ctx context.Context, orderID string) ([]*channel.OrderLine, error) {
	var lines []*channel.OrderLine
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindAll finds lines matching the query and filter
func (r *GormOrderLineRepository) FindAll(ctx context.Context, query channel.LineQuery, filter shared.Filter) (shared.Paginated[*channel.OrderLine], error) {
	var result shared.Paginated[*channel.OrderLine]

	q := r.applyQuery(r.db.WithContext(ctx).Model(&channel.OrderLine{}), query)
	if err := q.Count(&result.Total).Error; err != nil {
		return result, err
	}

	var lines []*channel.OrderLine
	if err := applyFilter(q, filter).Find(&lines).Error; err != nil {
		return result, err
	}

	result.Items = lines
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}

// FindEligible returns all lines satisfying the query in creation order
func (r *GormOrderLineRepository) FindEligible(ctx context.Context, query channel.LineQuery) ([]*channel.OrderLine, error) {
	var lines []*channel.OrderLine
	if err := r.applyQuery(r.db.WithContext(ctx), query).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindEligibleSince returns eligible lines created after the watermark
func (r *GormOrderLineRepository) FindEligibleSince(ctx context.Context, query channel.LineQuery, since time.Time) ([]*channel.OrderLine, error) {
	var lines []*channel.OrderLine
	if err := r.applyQuery(r.db.WithContext(ctx), query).
		Where("created_at > ?", since).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Update persists changes to an existing order line
func (r *GormOrderLineRepository) Update(ctx context.Context, line *channel.OrderLine) error {
	result := r.db.WithContext(ctx).Save(line)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts lines matching the query
func (r *GormOrderLineRepository) Count(ctx context.Context, query channel.LineQuery) (int64, error) {
	var count int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&channel.OrderLine{}), query).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderLineRepository) applyQuery(q *gorm.DB, query channel.LineQuery) *gorm.DB {
	if query.Channel != "" {
		q = q.Where("channel = ?", query.Channel)
	}
	if len(query.OrderStatuses) > 0 {
		q = q.Where("order_status IN ?", query.OrderStatuses)
	}
	if len(query.AcceptanceStatuses) > 0 {
		q = q.Where("acceptance_status IN ?", query.AcceptanceStatuses)
	}
	if query.From != nil {
		q = q.Where("order_date >= ?", *query.From)
	}
	if query.To != nil {
		q = q.Where("order_date < ?", *query.To)
	}
	return q
}

var _ channel.OrderLineRepository = (*GormOrderLineRepository)(nil)

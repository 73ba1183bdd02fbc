package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// GormRuleRepository implements mapping.RuleRepository using GORM
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GormRuleRepository
func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// Save persists a new mapping rule
func (r *GormRuleRepository) Save(ctx context.Context, rule *mapping.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// FindByID finds a rule by its ID
func (r *GormRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*mapping.Rule, error) {
	var rule mapping.Rule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll finds all rules matching the filter
func (r *GormRuleRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*mapping.Rule], error) {
	var result shared.Paginated[*mapping.Rule]

	query := r.db.WithContext(ctx).Model(&mapping.Rule{})
	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	var rules []*mapping.Rule
	if err := applyFilter(query, filter).Find(&rules).Error; err != nil {
		return result, err
	}

	result.Items = rules
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}

// FindAllActive returns active rules in creation order, for snapshot builds
func (r *GormRuleRepository) FindAllActive(ctx context.Context) ([]*mapping.Rule, error) {
	var rules []*mapping.Rule
	if err := r.db.WithContext(ctx).
		Where("status = ?", mapping.RuleStatusActive).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// FindActiveExact returns active exact rules for a pattern and source filter
func (r *GormRuleRepository) FindActiveExact(ctx context.Context, sourcePattern, sourceFilter string) ([]*mapping.Rule, error) {
	var rules []*mapping.Rule
	if err := r.db.WithContext(ctx).
		Where("status = ? AND pattern_type = ? AND source_pattern = ? AND source_filter = ?",
			mapping.RuleStatusActive, mapping.PatternTypeExact,
			strings.ToUpper(strings.TrimSpace(sourcePattern)), strings.TrimSpace(sourceFilter)).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Update persists changes to an existing rule
func (r *GormRuleRepository) Update(ctx context.Context, rule *mapping.Rule) error {
	result := r.db.WithContext(ctx).Save(rule)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a rule by ID
func (r *GormRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mapping.Rule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ mapping.RuleRepository = (*GormRuleRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// GormMasterBoxLinkRepository implements catalog.MasterBoxLinkRepository using GORM
type GormMasterBoxLinkRepository struct {
	db *gorm.DB
}

// NewGormMasterBoxLinkRepository creates a new GormMasterBoxLinkRepository
func NewGormMasterBoxLinkRepository(db *gorm.DB) *GormMasterBoxLinkRepository {
	return &GormMasterBoxLinkRepository{db: db}
}

// Save persists a new master box link
func (r *GormMasterBoxLinkRepository) Save(ctx context.Context, link *catalog.MasterBoxLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// FindByID finds a link by its ID
func (r *GormMasterBoxLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterBoxLink, error) {
	var link catalog.MasterBoxLink
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// FindBySKUMaster finds a link by its master box code
func (r *GormMasterBoxLinkRepository) FindBySKUMaster(ctx context.Context, skuMaster string) (*catalog.MasterBoxLink, error) {
	var link catalog.MasterBoxLink
	if err := r.db.WithContext(ctx).
		Where("sku_master = ?", catalog.NormalizeSKU(skuMaster)).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// FindByProductID finds all links pointing at a product
func (r *GormMasterBoxLinkRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*catalog.MasterBoxLink, error) {
	var links []*catalog.MasterBoxLink
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// FindAll finds all links matching the filter
func (r *GormMasterBoxLinkRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.MasterBoxLink], error) {
	var result shared.Paginated[*catalog.MasterBoxLink]

	query := r.db.WithContext(ctx).Model(&catalog.MasterBoxLink{})
	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	var links []*catalog.MasterBoxLink
	if err := applyFilter(query, filter).Find(&links).Error; err != nil {
		return result, err
	}

	result.Items = links
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}

// FindAllLinks returns every link, for snapshot builds
func (r *GormMasterBoxLinkRepository) FindAllLinks(ctx context.Context) ([]*catalog.MasterBoxLink, error) {
	var links []*catalog.MasterBoxLink
	if err := r.db.WithContext(ctx).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Update persists changes to an existing link
func (r *GormMasterBoxLinkRepository) Update(ctx context.Context, link *catalog.MasterBoxLink) error {
	result := r.db.WithContext(ctx).Save(link)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a link by ID
func (r *GormMasterBoxLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.MasterBoxLink{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.MasterBoxLinkRepository = (*GormMasterBoxLinkRepository)(nil)

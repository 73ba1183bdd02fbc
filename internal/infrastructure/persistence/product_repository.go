package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save persists a new product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("sku = ?", catalog.NormalizeSKU(sku)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKUPrimario finds all products sharing a canonical grouping SKU
func (r *GormProductRepository) FindBySKUPrimario(ctx context.Context, skuPrimario string) ([]*catalog.Product, error) {
	var products []*catalog.Product
	if err := r.db.WithContext(ctx).
		Where("sku_primario = ?", catalog.NormalizeSKU(skuPrimario)).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	var result shared.Paginated[*catalog.Product]

	query := r.db.WithContext(ctx).Model(&catalog.Product{})
	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	var products []*catalog.Product
	if err := applyFilter(query, filter).Find(&products).Error; err != nil {
		return result, err
	}

	result.Items = products
	result.Limit = filter.Limit
	result.Offset = filter.Offset
	return result, nil
}

// FindAllActive returns every active product, for snapshot builds
func (r *GormProductRepository) FindAllActive(ctx context.Context) ([]*catalog.Product, error) {
	var products []*catalog.Product
	if err := r.db.WithContext(ctx).
		Where("status = ?", catalog.ProductStatusActive).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update persists changes to an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

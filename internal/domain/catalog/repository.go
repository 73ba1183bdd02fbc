package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindBySKUPrimario(ctx context.Context, skuPrimario string) ([]*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Product], error)
	FindAllActive(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MasterBoxLinkRepository defines the persistence contract for master box links
type MasterBoxLinkRepository interface {
	Save(ctx context.Context, link *MasterBoxLink) error
	FindByID(ctx context.Context, id uuid.UUID) (*MasterBoxLink, error)
	FindBySKUMaster(ctx context.Context, skuMaster string) (*MasterBoxLink, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*MasterBoxLink, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*MasterBoxLink], error)
	FindAllLinks(ctx context.Context) ([]*MasterBoxLink, error)
	Update(ctx context.Context, link *MasterBoxLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}

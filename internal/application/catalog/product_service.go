package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// ProductService handles catalog product operations. Every successful
// write publishes the aggregate's domain events so the refresh
// subsystem can mark the resolution configuration dirty.
type ProductService struct {
	productRepo catalog.ProductRepository
	eventBus    shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, eventBus shared.EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		eventBus:    eventBus,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.productRepo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	skuPrimario := req.SKUPrimario
	if skuPrimario == "" {
		skuPrimario = req.SKU
	}

	product, err := catalog.NewProduct(req.SKU, skuPrimario, req.Name, req.UnitsPerDisplay)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateDetails(req.Name, req.Category, req.Brand, req.PackageType); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySKU returns a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	page, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		responses = append(responses, ToProductResponse(p))
	}
	return responses, page.Total, nil
}

// Update applies partial changes to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	brand := product.Brand
	if req.Brand != nil {
		brand = *req.Brand
	}
	packageType := product.PackageType
	if req.PackageType != nil {
		packageType = *req.PackageType
	}
	if err := product.UpdateDetails(name, category, brand, packageType); err != nil {
		return nil, err
	}

	if req.UnitsPerDisplay != nil {
		if err := product.UpdateUnitsPerDisplay(*req.UnitsPerDisplay); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Activate marks a product active
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.setStatus(ctx, id, true)
}

// Deactivate marks a product inactive, removing it from future
// resolution snapshots
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.setStatus(ctx, id, false)
}

func (s *ProductService) setStatus(ctx context.Context, id uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, product.GetDomainEvents()...)
	product.ClearDomainEvents()
}

package catalog

import (
	"strings"

	"github.com/salesbridge/backend/internal/domain/shared"
)

// ProductStatus represents the lifecycle state of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is the catalog aggregate root. The canonical identity used by
// resolution is SKUPrimario; SKU is the internal article code.
type Product struct {
	shared.BaseAggregateRoot
	SKU             string        `json:"sku" gorm:"not null;size:64;uniqueIndex"`
	SKUPrimario     string        `json:"sku_primario" gorm:"not null;size:64;index"`
	Name            string        `json:"name" gorm:"not null;size:255"`
	Category        string        `json:"category" gorm:"size:128;index"`
	Brand           string        `json:"brand" gorm:"size:128;index"`
	PackageType     string        `json:"package_type" gorm:"size:64"`
	UnitsPerDisplay int64         `json:"units_per_display" gorm:"not null;default:1"`
	Status          ProductStatus `json:"status" gorm:"not null;size:20;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NormalizeSKU canonicalizes a raw channel identifier for lookup:
// surrounding whitespace is stripped and the result upper-cased.
func NormalizeSKU(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NewProduct creates a new product aggregate
func NewProduct(sku, skuPrimario, name string, unitsPerDisplay int64) (*Product, error) {
	sku = NormalizeSKU(sku)
	skuPrimario = NormalizeSKU(skuPrimario)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if skuPrimario == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product canonical SKU cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitsPerDisplay <= 0 {
		unitsPerDisplay = 1
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		SKUPrimario:       skuPrimario,
		Name:              strings.TrimSpace(name),
		UnitsPerDisplay:   unitsPerDisplay,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))
	return product, nil
}

// UpdateDetails updates the descriptive attributes of the product
func (p *Product) UpdateDetails(name, category, brand, packageType string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = strings.TrimSpace(name)
	p.Category = strings.TrimSpace(category)
	p.Brand = strings.TrimSpace(brand)
	p.PackageType = strings.TrimSpace(packageType)
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// UpdateUnitsPerDisplay changes the per-display unit count used as the
// default conversion factor during resolution.
func (p *Product) UpdateUnitsPerDisplay(units int64) error {
	if units <= 0 {
		return shared.NewDomainError("INVALID_UNITS_PER_DISPLAY", "Units per display must be positive")
	}
	p.UnitsPerDisplay = units
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// Activate marks the product as active
func (p *Product) Activate() {
	if p.Status == ProductStatusActive {
		return
	}
	p.Status = ProductStatusActive
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// Deactivate marks the product as inactive. Inactive products are kept
// for historical facts but excluded from new resolution snapshots.
func (p *Product) Deactivate() {
	if p.Status == ProductStatusInactive {
		return
	}
	p.Status = ProductStatusInactive
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// IsActive returns true when the product participates in resolution
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/salesbridge/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU             string `json:"sku" binding:"required,sku,max=64"`
	SKUPrimario     string `json:"sku_primario" binding:"max=64"`
	Name            string `json:"name" binding:"required,min=1,max=255"`
	Category        string `json:"category" binding:"max=128"`
	Brand           string `json:"brand" binding:"max=128"`
	PackageType     string `json:"package_type" binding:"max=64"`
	UnitsPerDisplay int64  `json:"units_per_display" binding:"omitempty,min=1"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=255"`
	Category        *string `json:"category" binding:"omitempty,max=128"`
	Brand           *string `json:"brand" binding:"omitempty,max=128"`
	PackageType     *string `json:"package_type" binding:"omitempty,max=64"`
	UnitsPerDisplay *int64  `json:"units_per_display" binding:"omitempty,min=1"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID `json:"id"`
	SKU             string    `json:"sku"`
	SKUPrimario     string    `json:"sku_primario"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Brand           string    `json:"brand"`
	PackageType     string    `json:"package_type"`
	UnitsPerDisplay int64     `json:"units_per_display"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		SKUPrimario:     p.SKUPrimario,
		Name:            p.Name,
		Category:        p.Category,
		Brand:           p.Brand,
		PackageType:     p.PackageType,
		UnitsPerDisplay: p.UnitsPerDisplay,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}

// CreateMasterBoxLinkRequest represents a request to link a master box
// code to a product
type CreateMasterBoxLinkRequest struct {
	SKUMaster         string `json:"sku_master" binding:"required,sku,max=64"`
	ProductSKU        string `json:"product_sku" binding:"required,sku,max=64"`
	ItemsPerMasterBox int64  `json:"items_per_master_box" binding:"required,min=1"`
}

// UpdateMasterBoxLinkRequest represents a request to update a master box link
type UpdateMasterBoxLinkRequest struct {
	ProductSKU        *string `json:"product_sku" binding:"omitempty,min=1,max=64"`
	ItemsPerMasterBox *int64  `json:"items_per_master_box" binding:"omitempty,min=1"`
}

// MasterBoxLinkResponse represents a master box link in API responses
type MasterBoxLinkResponse struct {
	ID                uuid.UUID `json:"id"`
	SKUMaster         string    `json:"sku_master"`
	ProductID         uuid.UUID `json:"product_id"`
	ProductSKU        string    `json:"product_sku"`
	ItemsPerMasterBox int64     `json:"items_per_master_box"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Version           int       `json:"version"`
}

// ToMasterBoxLinkResponse converts a domain link to its response form
func ToMasterBoxLinkResponse(l *catalog.MasterBoxLink, productSKU string) MasterBoxLinkResponse {
	return MasterBoxLinkResponse{
		ID:                l.ID,
		SKUMaster:         l.SKUMaster,
		ProductID:         l.ProductID,
		ProductSKU:        productSKU,
		ItemsPerMasterBox: l.ItemsPerMasterBox,
		Status:            string(l.Status),
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
		Version:           l.Version,
	}
}

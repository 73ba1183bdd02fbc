package resolution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesbridge/backend/internal/domain/shared"
)

// MatchType records which step of the resolution chain produced a fact
type MatchType string

const (
	MatchTypeDirect           MatchType = "direct"
	MatchTypeMasterBox        MatchType = "master_box"
	MatchTypeMapping          MatchType = "mapping"
	MatchTypeMappingMasterBox MatchType = "mapping_master_box"
	MatchTypeUnmapped         MatchType = "unmapped"
)

// SalesFact is one resolved sales record. Facts are derived data: the
// store is rebuilt from order lines and the current configuration, never
// edited in place. BatchID ties a fact to the refresh run that built it.
type SalesFact struct {
	shared.BaseEntity
	LineID           uuid.UUID       `json:"line_id" gorm:"type:uuid;not null;index:idx_sales_facts_line_batch"`
	BatchID          uuid.UUID       `json:"batch_id" gorm:"type:uuid;not null;index:idx_sales_facts_line_batch;index:idx_sales_facts_batch"`
	RawIdentifier    string          `json:"raw_identifier" gorm:"not null;size:128"`
	CatalogSKU       string          `json:"catalog_sku" gorm:"size:64;index"`
	SKUPrimario      string          `json:"sku_primario" gorm:"size:64;index"`
	ProductName      string          `json:"product_name" gorm:"size:255"`
	Category         string          `json:"category" gorm:"size:128;index"`
	Brand            string          `json:"brand" gorm:"size:128;index"`
	PackageType      string          `json:"package_type" gorm:"size:64"`
	MatchType        MatchType       `json:"match_type" gorm:"not null;size:24;index"`
	Quantity         int64           `json:"quantity" gorm:"not null"`
	QuantityMultiplier int64         `json:"quantity_multiplier" gorm:"not null;default:1"`
	ConversionFactor int64           `json:"conversion_factor" gorm:"not null;default:1"`
	UnitsSold        int64           `json:"units_sold" gorm:"not null"`
	Revenue          decimal.Decimal `json:"revenue" gorm:"type:decimal(15,4);not null"`
	Channel          string          `json:"channel" gorm:"not null;size:64;index"`
	OrderDate        time.Time       `json:"order_date" gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SalesFact) TableName() string {
	return "sales_facts"
}

// IsMapped reports whether the fact resolved to a catalog product
func (f *SalesFact) IsMapped() bool {
	return f.MatchType != MatchTypeUnmapped
}

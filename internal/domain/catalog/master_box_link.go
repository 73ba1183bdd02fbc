package catalog

import (
	"github.com/google/uuid"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// LinkStatus represents the lifecycle state of a master box link
type LinkStatus string

const (
	LinkStatusActive   LinkStatus = "active"
	LinkStatusInactive LinkStatus = "inactive"
)

// MasterBoxLink associates a master box code with a catalog product and
// records how many sellable items one master box contains. Exactly one
// link may exist per master code; inactive links keep their conversion
// factor but are skipped during resolution.
type MasterBoxLink struct {
	shared.BaseAggregateRoot
	SKUMaster         string     `json:"sku_master" gorm:"not null;size:64;uniqueIndex:idx_master_box_links_sku_master"`
	ProductID         uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;index"`
	ItemsPerMasterBox int64      `json:"items_per_master_box" gorm:"not null"`
	Status            LinkStatus `json:"status" gorm:"not null;size:20;default:'active'"`
}

// TableName returns the table name for GORM
func (MasterBoxLink) TableName() string {
	return "master_box_links"
}

// NewMasterBoxLink creates a new master box link
func NewMasterBoxLink(skuMaster string, productID uuid.UUID, itemsPerMasterBox int64) (*MasterBoxLink, error) {
	skuMaster = NormalizeSKU(skuMaster)
	if skuMaster == "" {
		return nil, shared.NewDomainError("INVALID_MASTER_CODE", "Master box code cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_REFERENCE", "Master box link requires a product")
	}
	if itemsPerMasterBox <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS_PER_MASTER_BOX", "Items per master box must be positive")
	}

	link := &MasterBoxLink{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKUMaster:         skuMaster,
		ProductID:         productID,
		ItemsPerMasterBox: itemsPerMasterBox,
		Status:            LinkStatusActive,
	}

	link.AddDomainEvent(NewMasterBoxLinkChangedEvent(EventTypeMasterBoxLinkCreated, link))
	return link, nil
}

// UpdateItemsPerMasterBox changes the per-box item count
func (l *MasterBoxLink) UpdateItemsPerMasterBox(items int64) error {
	if items <= 0 {
		return shared.NewDomainError("INVALID_ITEMS_PER_MASTER_BOX", "Items per master box must be positive")
	}
	l.ItemsPerMasterBox = items
	l.IncrementVersion()
	l.AddDomainEvent(NewMasterBoxLinkChangedEvent(EventTypeMasterBoxLinkUpdated, l))
	return nil
}

// Activate returns the link to resolution snapshots
func (l *MasterBoxLink) Activate() {
	if l.Status == LinkStatusActive {
		return
	}
	l.Status = LinkStatusActive
	l.IncrementVersion()
	l.AddDomainEvent(NewMasterBoxLinkChangedEvent(EventTypeMasterBoxLinkUpdated, l))
}

// Deactivate removes the link from future resolution snapshots while
// keeping its conversion factor
func (l *MasterBoxLink) Deactivate() {
	if l.Status == LinkStatusInactive {
		return
	}
	l.Status = LinkStatusInactive
	l.IncrementVersion()
	l.AddDomainEvent(NewMasterBoxLinkChangedEvent(EventTypeMasterBoxLinkUpdated, l))
}

// IsActive returns true when the link participates in resolution
func (l *MasterBoxLink) IsActive() bool {
	return l.Status == LinkStatusActive
}

// Retarget points the link at a different product
func (l *MasterBoxLink) Retarget(productID uuid.UUID) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT_REFERENCE", "Master box link requires a product")
	}
	l.ProductID = productID
	l.IncrementVersion()
	l.AddDomainEvent(NewMasterBoxLinkChangedEvent(EventTypeMasterBoxLinkUpdated, l))
	return nil
}

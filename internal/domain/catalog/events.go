package catalog

import (
	"github.com/salesbridge/backend/internal/domain/shared"
)

// Event types emitted by the catalog domain. The refresh subsystem
// subscribes to these to mark the resolution configuration dirty.
const (
	EventTypeProductCreated       = "catalog.product.created"
	EventTypeProductUpdated       = "catalog.product.updated"
	EventTypeMasterBoxLinkCreated = "catalog.master_box_link.created"
	EventTypeMasterBoxLinkUpdated = "catalog.master_box_link.updated"
	EventTypeMasterBoxLinkDeleted = "catalog.master_box_link.deleted"
)

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU         string `json:"sku"`
	SKUPrimario string `json:"sku_primario"`
}

// NewProductCreatedEvent creates a new product created event
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, p.ID, p.Version),
		SKU:             p.SKU,
		SKUPrimario:     p.SKUPrimario,
	}
}

// ProductUpdatedEvent is emitted when a product changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKUPrimario string `json:"sku_primario"`
}

// NewProductUpdatedEvent creates a new product updated event
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, p.ID, p.Version),
		SKUPrimario:     p.SKUPrimario,
	}
}

// MasterBoxLinkChangedEvent is emitted when a master box link is
// created, updated or removed.
type MasterBoxLinkChangedEvent struct {
	shared.BaseDomainEvent
	SKUMaster string `json:"sku_master"`
}

// NewMasterBoxLinkChangedEvent creates a master box link change event
func NewMasterBoxLinkChangedEvent(eventType string, l *MasterBoxLink) *MasterBoxLinkChangedEvent {
	return &MasterBoxLinkChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, l.ID, l.Version),
		SKUMaster:       l.SKUMaster,
	}
}

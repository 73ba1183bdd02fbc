package channel

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesbridge/backend/internal/domain/shared"
)

// OrderStatus is the channel-reported lifecycle state of an order line
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
)

// AcceptanceStatus is the channel's acceptance verdict for a line
type AcceptanceStatus string

const (
	AcceptanceStatusAccepted AcceptanceStatus = "accepted"
	AcceptanceStatusRejected AcceptanceStatus = "rejected"
	AcceptanceStatusPending  AcceptanceStatus = "pending"
)

// OrderLine is a raw sales line as received from a channel. The
// RawIdentifier is stored exactly as received; normalization happens in
// the resolution engine, never at ingestion.
type OrderLine struct {
	shared.BaseAggregateRoot
	OrderID          string           `json:"order_id" gorm:"not null;size:64;index:idx_order_lines_order_id"`
	RawIdentifier    string           `json:"raw_identifier" gorm:"not null;size:128"`
	Quantity         int64            `json:"quantity" gorm:"not null"`
	UnitPrice        decimal.Decimal  `json:"unit_price" gorm:"type:decimal(15,4);not null"`
	Subtotal         decimal.Decimal  `json:"subtotal" gorm:"type:decimal(15,4);not null"`
	Channel          string           `json:"channel" gorm:"not null;size:64;index"`
	OrderDate        time.Time        `json:"order_date" gorm:"not null;index"`
	OrderStatus      OrderStatus      `json:"order_status" gorm:"not null;size:20;index"`
	AcceptanceStatus AcceptanceStatus `json:"acceptance_status" gorm:"not null;size:20;index"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates a new order line
func NewOrderLine(orderID, rawIdentifier string, quantity int64, unitPrice, subtotal decimal.Decimal, channelName string, orderDate time.Time, orderStatus OrderStatus, acceptanceStatus AcceptanceStatus) (*OrderLine, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}
	if strings.TrimSpace(rawIdentifier) == "" {
		return nil, shared.NewDomainError("INVALID_RAW_IDENTIFIER", "Order line identifier cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order line quantity must be positive")
	}
	if strings.TrimSpace(channelName) == "" {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Order line channel cannot be empty")
	}
	if subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SUBTOTAL", "Order line subtotal cannot be negative")
	}
	if orderStatus == "" {
		orderStatus = OrderStatusPending
	}
	if acceptanceStatus == "" {
		acceptanceStatus = AcceptanceStatusPending
	}

	return &OrderLine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           strings.TrimSpace(orderID),
		RawIdentifier:     rawIdentifier,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		Subtotal:          subtotal,
		Channel:           strings.TrimSpace(channelName),
		OrderDate:         orderDate,
		OrderStatus:       orderStatus,
		AcceptanceStatus:  acceptanceStatus,
	}, nil
}

// UpdateStatuses applies a channel status backfill to the line
func (l *OrderLine) UpdateStatuses(orderStatus OrderStatus, acceptanceStatus AcceptanceStatus) {
	changed := false
	if orderStatus != "" && orderStatus != l.OrderStatus {
		l.OrderStatus = orderStatus
		changed = true
	}
	if acceptanceStatus != "" && acceptanceStatus != l.AcceptanceStatus {
		l.AcceptanceStatus = acceptanceStatus
		changed = true
	}
	if changed {
		l.IncrementVersion()
	}
}

package channel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesbridge/backend/internal/domain/channel"
)

// IngestLineRequest represents one raw sales line from a channel feed
type IngestLineRequest struct {
	OrderID          string          `json:"order_id" binding:"required,min=1,max=64"`
	RawIdentifier    string          `json:"raw_identifier" binding:"required,min=1,max=128"`
	Quantity         int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Channel          string          `json:"channel" binding:"required,min=1,max=64"`
	OrderDate        time.Time       `json:"order_date" binding:"required"`
	OrderStatus      string          `json:"order_status" binding:"omitempty,oneof=pending confirmed shipped delivered cancelled returned"`
	AcceptanceStatus string          `json:"acceptance_status" binding:"omitempty,oneof=accepted rejected pending"`
}

// IngestBatchRequest represents a batch of raw sales lines
type IngestBatchRequest struct {
	Lines []IngestLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// BackfillStatusRequest updates channel statuses for all lines of an order
type BackfillStatusRequest struct {
	OrderStatus      string `json:"order_status" binding:"omitempty,oneof=pending confirmed shipped delivered cancelled returned"`
	AcceptanceStatus string `json:"acceptance_status" binding:"omitempty,oneof=accepted rejected pending"`
}

// LineResponse represents an order line in API responses
type LineResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          string          `json:"order_id"`
	RawIdentifier    string          `json:"raw_identifier"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Channel          string          `json:"channel"`
	OrderDate        time.Time       `json:"order_date"`
	OrderStatus      string          `json:"order_status"`
	AcceptanceStatus string          `json:"acceptance_status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToLineResponse converts a domain OrderLine to LineResponse
func ToLineResponse(l *channel.OrderLine) LineResponse {
	return LineResponse{
		ID:               l.ID,
		OrderID:          l.OrderID,
		RawIdentifier:    l.RawIdentifier,
		Quantity:         l.Quantity,
		UnitPrice:        l.UnitPrice,
		Subtotal:         l.Subtotal,
		Channel:          l.Channel,
		OrderDate:        l.OrderDate,
		OrderStatus:      string(l.OrderStatus),
		AcceptanceStatus: string(l.AcceptanceStatus),
		CreatedAt:        l.CreatedAt,
	}
}

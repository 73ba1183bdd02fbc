package channel

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salesbridge/backend/internal/domain/channel"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// IngestionService stores raw order lines exactly as received. No
// resolution happens here: identifiers are kept verbatim and only
// interpreted when the fact store is refreshed.
type IngestionService struct {
	lineRepo channel.OrderLineRepository
	logger   *zap.Logger
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(lineRepo channel.OrderLineRepository, logger *zap.Logger) *IngestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestionService{
		lineRepo: lineRepo,
		logger:   logger,
	}
}

// Ingest stores one raw order line
func (s *IngestionService) Ingest(ctx context.Context, req IngestLineRequest) (*LineResponse, error) {
	line, err := s.toDomain(req)
	if err != nil {
		return nil, err
	}
	if err := s.lineRepo.Save(ctx, line); err != nil {
		return nil, err
	}

	resp := ToLineResponse(line)
	return &resp, nil
}

// IngestBatch stores a batch of raw order lines. The batch is rejected
// as a whole if any line is invalid, so a feed retry never half-lands.
func (s *IngestionService) IngestBatch(ctx context.Context, req IngestBatchRequest) ([]LineResponse, error) {
	lines := make([]*channel.OrderLine, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		line, err := s.toDomain(lineReq)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, line)
	}

	if err := s.lineRepo.SaveBatch(ctx, lines); err != nil {
		return nil, err
	}
	s.logger.Info("ingested order lines", zap.Int("count", len(lines)))

	responses := make([]LineResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, ToLineResponse(line))
	}
	return responses, nil
}

// Get returns an order line by ID
func (s *IngestionService) Get(ctx context.Context, id uuid.UUID) (*LineResponse, error) {
	line, err := s.lineRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLineResponse(line)
	return &resp, nil
}

// List returns a page of order lines
func (s *IngestionService) List(ctx context.Context, query channel.LineQuery, filter shared.Filter) ([]LineResponse, int64, error) {
	page, err := s.lineRepo.FindAll(ctx, query, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]LineResponse, 0, len(page.Items))
	for _, line := range page.Items {
		responses = append(responses, ToLineResponse(line))
	}
	return responses, page.Total, nil
}

// BackfillStatus applies a channel status update to all lines of an
// order. This is the only mutation order lines allow after ingestion.
func (s *IngestionService) BackfillStatus(ctx context.Context, orderID string, req BackfillStatusRequest) ([]LineResponse, error) {
	lines, err := s.lineRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.ErrNotFound
	}

	responses := make([]LineResponse, 0, len(lines))
	for _, line := range lines {
		line.UpdateStatuses(channel.OrderStatus(req.OrderStatus), channel.AcceptanceStatus(req.AcceptanceStatus))
		if err := s.lineRepo.Update(ctx, line); err != nil {
			return nil, err
		}
		responses = append(responses, ToLineResponse(line))
	}

	s.logger.Info("backfilled order statuses",
		zap.String("order_id", orderID),
		zap.Int("lines", len(lines)))
	return responses, nil
}

func (s *IngestionService) toDomain(req IngestLineRequest) (*channel.OrderLine, error) {
	subtotal := req.Subtotal
	if subtotal.IsZero() && !req.UnitPrice.IsZero() {
		subtotal = req.UnitPrice.Mul(decimal.NewFromInt(req.Quantity))
	}
	return channel.NewOrderLine(
		req.OrderID, req.RawIdentifier, req.Quantity,
		req.UnitPrice, subtotal,
		req.Channel, req.OrderDate,
		channel.OrderStatus(req.OrderStatus),
		channel.AcceptanceStatus(req.AcceptanceStatus),
	)
}

package channel

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salesbridge/backend/internal/domain/channel"
	"github.com/salesbridge/backend/internal/domain/shared"
	"github.com/salesbridge/backend/internal/infrastructure/persistence"
)

func newTestService(t *testing.T) (*IngestionService, channel.OrderLineRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	lineRepo := persistence.NewGormOrderLineRepository(db)
	return NewIngestionService(lineRepo, nil), lineRepo
}

func lineRequest(orderID, identifier string, quantity int64) IngestLineRequest {
	return IngestLineRequest{
		OrderID:       orderID,
		RawIdentifier: identifier,
		Quantity:      quantity,
		UnitPrice:     decimal.RequireFromString("2.50"),
		Channel:       "mercadolibre",
		OrderDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestIngestionService_Ingest(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	t.Run("stores the identifier verbatim", func(t *testing.T) {
		resp, err := service.Ingest(ctx, lineRequest("O-1", " pack_grca_u26010 ", 10))
		require.NoError(t, err)
		assert.Equal(t, " pack_grca_u26010 ", resp.RawIdentifier,
			"ingestion never normalizes, resolution does")
	})

	t.Run("computes subtotal from unit price when absent", func(t *testing.T) {
		resp, err := service.Ingest(ctx, lineRequest("O-2", "BAKC_U04010", 100))
		require.NoError(t, err)
		assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("250.00")))
	})

	t.Run("keeps an explicit subtotal", func(t *testing.T) {
		req := lineRequest("O-3", "BAKC_U04010", 100)
		req.Subtotal = decimal.RequireFromString("240.00")
		resp, err := service.Ingest(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("240.00")))
	})

	t.Run("defaults statuses to pending", func(t *testing.T) {
		resp, err := service.Ingest(ctx, lineRequest("O-4", "BAKC_U04010", 1))
		require.NoError(t, err)
		assert.Equal(t, string(channel.OrderStatusPending), resp.OrderStatus)
		assert.Equal(t, string(channel.AcceptanceStatusPending), resp.AcceptanceStatus)
	})

	t.Run("rejects invalid quantity", func(t *testing.T) {
		_, err := service.Ingest(ctx, lineRequest("O-5", "BAKC_U04010", 0))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})
}

func TestIngestionService_IngestBatch(t *testing.T) {
	t.Run("stores all lines", func(t *testing.T) {
		service, lineRepo := newTestService(t)
		ctx := context.Background()

		responses, err := service.IngestBatch(ctx, IngestBatchRequest{
			Lines: []IngestLineRequest{
				lineRequest("O-1", "BAKC_U04010", 100),
				lineRequest("O-1", "XYZ_UNKNOWN", 7),
			},
		})
		require.NoError(t, err)
		assert.Len(t, responses, 2)

		count, err := lineRepo.Count(ctx, channel.LineQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("rejects the whole batch on one invalid line", func(t *testing.T) {
		service, lineRepo := newTestService(t)
		ctx := context.Background()

		_, err := service.IngestBatch(ctx, IngestBatchRequest{
			Lines: []IngestLineRequest{
				lineRequest("O-1", "BAKC_U04010", 100),
				lineRequest("O-1", "", 7),
			},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "line 1")

		count, err := lineRepo.Count(ctx, channel.LineQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count, "nothing lands when the batch fails")
	})
}

func TestIngestionService_BackfillStatus(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.IngestBatch(ctx, IngestBatchRequest{
		Lines: []IngestLineRequest{
			lineRequest("O-1", "BAKC_U04010", 100),
			lineRequest("O-1", "GRBE_C02010", 2),
			lineRequest("O-2", "XYZ_UNKNOWN", 7),
		},
	})
	require.NoError(t, err)

	responses, err := service.BackfillStatus(ctx, "O-1", BackfillStatusRequest{
		OrderStatus:      "confirmed",
		AcceptanceStatus: "accepted",
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)
	for _, resp := range responses {
		assert.Equal(t, "confirmed", resp.OrderStatus)
		assert.Equal(t, "accepted", resp.AcceptanceStatus)
	}

	untouched, total, err := service.List(ctx, channel.LineQuery{
		OrderStatuses: []channel.OrderStatus{channel.OrderStatusPending},
	}, shared.DefaultFilter())
	require.NoError(t, err)
	require.Equal(t, int64(1), total, "other orders keep their statuses")
	assert.Equal(t, "O-2", untouched[0].OrderID)

	_, err = service.BackfillStatus(ctx, "O-404", BackfillStatusRequest{OrderStatus: "confirmed"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

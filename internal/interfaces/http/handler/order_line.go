package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	channelapp "github.com/salesbridge/backend/internal/application/channel"
	"github.com/salesbridge/backend/internal/domain/channel"
)

// OrderLineHandler handles raw order line ingestion API endpoints
type OrderLineHandler struct {
	BaseHandler
	ingestionService *channelapp.IngestionService
}

// NewOrderLineHandler creates a new OrderLineHandler
func NewOrderLineHandler(ingestionService *channelapp.IngestionService) *OrderLineHandler {
	return &OrderLineHandler{ingestionService: ingestionService}
}

// RegisterRoutes registers all order line routes
func (h *OrderLineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lines := rg.Group("/order-lines")
	{
		lines.POST("", h.Ingest)
		lines.POST("/batch", h.IngestBatch)
		lines.GET("", h.List)
		lines.GET("/:id", h.Get)
	}
	orders := rg.Group("/orders")
	{
		orders.PUT("/:order_id/status", h.BackfillStatus)
	}
}

// Ingest handles POST /order-lines
func (h *OrderLineHandler) Ingest(c *gin.Context) {
	var req channelapp.IngestLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.ingestionService.Ingest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// IngestBatch handles POST /order-lines/batch
func (h *OrderLineHandler) IngestBatch(c *gin.Context) {
	var req channelapp.IngestBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	responses, err := h.ingestionService.IngestBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, responses)
}

// List handles GET /order-lines
func (h *OrderLineHandler) List(c *gin.Context) {
	filter, ok := h.parseListRequest(c)
	if !ok {
		return
	}
	query, ok := h.parseLineQuery(c)
	if !ok {
		return
	}

	lines, total, err := h.ingestionService.List(c.Request.Context(), query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, lines, total, filter.Limit, filter.Offset)
}

// Get handles GET /order-lines/:id
func (h *OrderLineHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.ingestionService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BackfillStatus handles PUT /orders/:order_id/status
func (h *OrderLineHandler) BackfillStatus(c *gin.Context) {
	var req channelapp.BackfillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	responses, err := h.ingestionService.BackfillStatus(c.Request.Context(), c.Param("order_id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// parseLineQuery binds order line query parameters
func (h *OrderLineHandler) parseLineQuery(c *gin.Context) (channel.LineQuery, bool) {
	query := channel.LineQuery{
		Channel: c.Query("channel"),
	}
	if status := c.Query("order_status"); status != "" {
		query.OrderStatuses = []channel.OrderStatus{channel.OrderStatus(status)}
	}
	if status := c.Query("acceptance_status"); status != "" {
		query.AcceptanceStatuses = []channel.AcceptanceStatus{channel.AcceptanceStatus(status)}
	}

	for param, target := range map[string]**time.Time{"from": &query.From, "to": &query.To} {
		value := c.Query(param)
		if value == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			h.BadRequest(c, "Invalid "+param+" parameter: must be RFC3339")
			return channel.LineQuery{}, false
		}
		*target = &parsed
	}
	return query, true
}

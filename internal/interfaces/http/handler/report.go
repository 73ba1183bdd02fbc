package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/salesbridge/backend/internal/application/report"
	"github.com/salesbridge/backend/internal/domain/resolution"
)

// ReportHandler handles sales fact reporting API endpoints. Everything
// here reads the currently published batch.
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/daily", h.Daily)
		reports.GET("/by-category", h.ByCategory)
		reports.GET("/by-sku", h.BySKU)
		reports.GET("/by-match-type", h.ByMatchType)
		reports.GET("/unmapped", h.Unmapped)
		reports.GET("/facts", h.Facts)
	}
}

// Summary handles GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	query, ok := h.parseFactQuery(c)
	if !ok {
		return
	}

	totals, err := h.reportService.Summary(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// Daily handles GET /reports/daily
func (h *ReportHandler) Daily(c *gin.Context) {
	query, ok := h.parseFactQuery(c)
	if !ok {
		return
	}

	rows, err := h.reportService.Daily(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ByCategory handles GET /reports/by-category
func (h *ReportHandler) ByCategory(c *gin.Context) {
	query, ok := h.parseFactQuery(c)
	if !ok {
		return
	}

	rows, err := h.reportService.ByCategory(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// BySKU handles GET /reports/by-sku
func (h *ReportHandler) BySKU(c *gin.Context) {
	query, ok := h.parseFactQuery(c)
	if !ok {
		return
	}

	rows, err := h.reportService.BySKU(c.Request.Context(), query, h.parseLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ByMatchType handles GET /reports/by-match-type
func (h *ReportHandler) ByMatchType(c *gin.Context) {
	query, ok := h.parseFactQuery(c)
	if !ok {
		return
	}

	rows, err := h.reportService.ByMatchType(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Unmapped handles GET /reports/unmapped
func (h *ReportHandler) Unmapped(c *gin.Context) {
	query, ok := h.parseFactQuery(c)
	if !ok {
		return
	}

	rows, err := h.reportService.Unmapped(c.Request.Context(), query, h.parseLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Facts handles GET /reports/facts
func (h *ReportHandler) Facts(c *gin.Context) {
	query, ok := h.parseFactQuery(c)
	if !ok {
		return
	}
	filter, ok := h.parseListRequest(c)
	if !ok {
		return
	}

	facts, total, err := h.reportService.Facts(c.Request.Context(), query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, facts, total, filter.Limit, filter.Offset)
}

// parseFactQuery binds fact query parameters
func (h *ReportHandler) parseFactQuery(c *gin.Context) (resolution.FactQuery, bool) {
	query := resolution.FactQuery{
		Channel:     c.Query("channel"),
		MatchType:   resolution.MatchType(c.Query("match_type")),
		Category:    c.Query("category"),
		SKUPrimario: c.Query("sku_primario"),
	}

	for param, target := range map[string]**time.Time{"from": &query.From, "to": &query.To} {
		value := c.Query(param)
		if value == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			h.BadRequest(c, "Invalid "+param+" parameter: must be RFC3339")
			return resolution.FactQuery{}, false
		}
		*target = &parsed
	}
	return query, true
}

func (h *ReportHandler) parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		return 0
	}
	return limit
}

package handler

import (
	"github.com/gin-gonic/gin"

	refreshapp "github.com/salesbridge/backend/internal/application/refresh"
)

// RefreshHandler handles fact store refresh API endpoints
type RefreshHandler struct {
	BaseHandler
	refreshService *refreshapp.Service
}

// NewRefreshHandler creates a new RefreshHandler
func NewRefreshHandler(refreshService *refreshapp.Service) *RefreshHandler {
	return &RefreshHandler{refreshService: refreshService}
}

// RegisterRoutes registers all refresh routes
func (h *RefreshHandler) RegisterRoutes(rg *gin.RouterGroup) {
	refresh := rg.Group("/refresh")
	{
		refresh.POST("/full", h.Full)
		refresh.POST("/incremental", h.Incremental)
		refresh.GET("/status", h.Status)
	}
	rg.POST("/resolution/preview", h.Preview)
}

// Full handles POST /refresh/full. The call blocks until the run
// completes; concurrent requests coalesce onto one run.
func (h *RefreshHandler) Full(c *gin.Context) {
	result, err := h.refreshService.RefreshFull(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Incremental handles POST /refresh/incremental
func (h *RefreshHandler) Incremental(c *gin.Context) {
	result, err := h.refreshService.RefreshIncremental(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Status handles GET /refresh/status
func (h *RefreshHandler) Status(c *gin.Context) {
	status, err := h.refreshService.Status(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// Preview handles POST /resolution/preview
func (h *RefreshHandler) Preview(c *gin.Context) {
	var req refreshapp.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.refreshService.Preview(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

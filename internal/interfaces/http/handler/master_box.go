package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/salesbridge/backend/internal/application/catalog"
)

// MasterBoxHandler handles master box link API endpoints
type MasterBoxHandler struct {
	BaseHandler
	masterBoxService *catalogapp.MasterBoxService
}

// NewMasterBoxHandler creates a new MasterBoxHandler
func NewMasterBoxHandler(masterBoxService *catalogapp.MasterBoxService) *MasterBoxHandler {
	return &MasterBoxHandler{masterBoxService: masterBoxService}
}

// RegisterRoutes registers all master box link routes
func (h *MasterBoxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	links := rg.Group("/master-boxes")
	{
		links.POST("", h.Create)
		links.GET("", h.List)
		links.GET("/:id", h.Get)
		links.PUT("/:id", h.Update)
		links.POST("/:id/activate", h.Activate)
		links.POST("/:id/deactivate", h.Deactivate)
		links.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /master-boxes
func (h *MasterBoxHandler) Create(c *gin.Context) {
	var req catalogapp.CreateMasterBoxLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.masterBoxService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /master-boxes
func (h *MasterBoxHandler) List(c *gin.Context) {
	filter, ok := h.parseListRequest(c)
	if !ok {
		return
	}

	links, total, err := h.masterBoxService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, links, total, filter.Limit, filter.Offset)
}

// Get handles GET /master-boxes/:id
func (h *MasterBoxHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.masterBoxService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /master-boxes/:id
func (h *MasterBoxHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateMasterBoxLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.masterBoxService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /master-boxes/:id/activate
func (h *MasterBoxHandler) Activate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.masterBoxService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate handles POST /master-boxes/:id/deactivate
func (h *MasterBoxHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.masterBoxService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /master-boxes/:id
func (h *MasterBoxHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.masterBoxService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

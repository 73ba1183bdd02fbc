package handler

import (
	"github.com/gin-gonic/gin"

	mappingapp "github.com/salesbridge/backend/internal/application/mapping"
)

// MappingRuleHandler handles mapping rule API endpoints
type MappingRuleHandler struct {
	BaseHandler
	ruleService *mappingapp.RuleService
}

// NewMappingRuleHandler creates a new MappingRuleHandler
func NewMappingRuleHandler(ruleService *mappingapp.RuleService) *MappingRuleHandler {
	return &MappingRuleHandler{ruleService: ruleService}
}

// RegisterRoutes registers all mapping rule routes
func (h *MappingRuleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rules := rg.Group("/mapping-rules")
	{
		rules.POST("", h.Create)
		rules.GET("", h.List)
		rules.GET("/:id", h.Get)
		rules.PUT("/:id", h.Update)
		rules.POST("/:id/activate", h.Activate)
		rules.POST("/:id/deactivate", h.Deactivate)
		rules.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /mapping-rules
func (h *MappingRuleHandler) Create(c *gin.Context) {
	var req mappingapp.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.ruleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /mapping-rules
func (h *MappingRuleHandler) List(c *gin.Context) {
	filter, ok := h.parseListRequest(c)
	if !ok {
		return
	}

	rules, total, err := h.ruleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rules, total, filter.Limit, filter.Offset)
}

// Get handles GET /mapping-rules/:id
func (h *MappingRuleHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.ruleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /mapping-rules/:id
func (h *MappingRuleHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req mappingapp.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.ruleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /mapping-rules/:id/activate
func (h *MappingRuleHandler) Activate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.ruleService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate handles POST /mapping-rules/:id/deactivate
func (h *MappingRuleHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.ruleService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /mapping-rules/:id
func (h *MappingRuleHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ruleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

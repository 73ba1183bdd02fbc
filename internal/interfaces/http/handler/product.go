package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/salesbridge/backend/internal/application/catalog"
)

// ProductHandler handles catalog product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.GET("/sku/:sku", h.GetBySKU)
		products.PUT("/:id", h.Update)
		products.POST("/:id/activate", h.Activate)
		products.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	filter, ok := h.parseListRequest(c)
	if !ok {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Limit, filter.Offset)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetBySKU handles GET /products/sku/:sku
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	resp, err := h.productService.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /products/:id/activate
func (h *ProductHandler) Activate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate handles POST /products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.productService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

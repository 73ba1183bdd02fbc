package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salesbridge/backend/internal/domain/shared"
	"github.com/salesbridge/backend/internal/interfaces/http/dto"
	"github.com/salesbridge/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, limit, offset int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, limit, offset))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeBadRequest, message, getRequestID(c)))
}

// BindError sends a 400 response for a request body binding failure
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.BadRequest(c, "Invalid request body: "+middleware.ValidationMessage(err))
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeNotFound, message, getRequestID(c)))
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal, message, getRequestID(c)))
}

// HandleError converts domain and sentinel errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(
			code, domainErr.Message, requestID))
		return
	}

	if errors.Is(err, shared.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Resource not found", requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}

// parseUUIDParam parses a UUID path parameter, responding with 400 on
// failure. The bool result reports whether parsing succeeded.
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter: must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseListRequest binds pagination query parameters onto a filter
func (h *BaseHandler) parseListRequest(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return shared.Filter{}, false
	}

	filter := shared.DefaultFilter()
	if req.Limit > 0 {
		filter.Limit = req.Limit
	}
	if req.Offset > 0 {
		filter.Offset = req.Offset
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.Desc = req.OrderDir == "desc"
	}
	return filter, true
}

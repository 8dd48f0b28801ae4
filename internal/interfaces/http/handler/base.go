package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/opsuite/backend/internal/interfaces/http/dto"
	"github.com/opsuite/backend/internal/interfaces/http/middleware"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getTenantID extracts the tenant ID placed in the context by the tenant
// middleware
func getTenantID(c *gin.Context) (uuid.UUID, error) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		return uuid.Nil, errors.New("tenant not found in context")
	}
	return tenantID, nil
}

// getOperatorID extracts the operator ID from the context or header
func getOperatorID(c *gin.Context) (uuid.UUID, error) {
	if operatorID, ok := middleware.GetOperatorID(c); ok {
		return operatorID, nil
	}
	return uuid.Nil, errors.New("operator identification required")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindingError turns a ShouldBind error into a 400 response, with per-field
// details when the validator produced them
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		middleware.HandleValidationError(c, err)
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
}

// codedError is implemented by business errors that carry a stable code
// alongside structured payloads
type codedError interface {
	error
	Code() string
}

// HandleError converts domain errors to HTTP responses. Unknown error types
// become 500 without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, getRequestID(c)))
		return
	}

	var coded codedError
	if errors.As(err, &coded) {
		statusCode := dto.GetHTTPStatus(coded.Code())
		c.JSON(statusCode, dto.NewErrorResponseWithRequestID(coded.Code(), coded.Error(), getRequestID(c)))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

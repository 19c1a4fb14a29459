package handler

import (
	"errors"
	"net/http"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/logger"
	"github.com/gestor/backend/internal/interfaces/http/dto"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// getTenantID extracts the authenticated tenant ID from JWT claims.
func getTenantID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.GetTenantID(c)
}

// getUserID extracts the authenticated user ID from JWT claims.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.GetUserID(c)
}

// parseIDParam parses the :id path parameter as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
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

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, getRequestID(c)))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, getRequestID(c)))
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, message, getRequestID(c)))
}

// HandleError converts application and domain errors to HTTP responses.
// Business-rule validation failures carry their full detail list; domain
// errors map through the shared code-to-status table; anything else is
// reported as an opaque internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Submitted data failed validation",
			requestID,
			validationErr.Failures,
		))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode,
			dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	// The caller gets an opaque message; the full error goes to the
	// request-scoped log.
	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}

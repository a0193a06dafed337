package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vapeshop/storefront/internal/domain/shared"
	"github.com/vapeshop/storefront/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 error response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(code, message))
}

// HandleError maps a domain error to the appropriate HTTP response
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(statusForCode(domainErr.Code), dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("INTERNAL_ERROR", "Internal server error"))
}

// statusForCode maps domain error codes to HTTP status codes
func statusForCode(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "FLAVOR_OUT_OF_STOCK", "MINIMUM_ORDER_NOT_MET":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

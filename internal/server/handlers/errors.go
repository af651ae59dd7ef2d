package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/domain/models"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse acknowledges requests that return no document.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps service errors onto HTTP statuses. notFound is the message used for
// models.ErrNotFound.
func respondError(c *gin.Context, logger *zap.Logger, err error, notFound string) {
	var (
		validationErr *models.ValidationError
		fieldErrs     validator.ValidationErrors
	)

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: notFound})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: validationErr.Error()})
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: describeFieldErrors(fieldErrs)})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
	}
}

// bindError answers a request whose body could not be decoded. Bodies that are not
// JSON at all still count as client errors.
func bindError(c *gin.Context, logger *zap.Logger, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: describeFieldErrors(fieldErrs)})
		return
	}
	logger.Debug("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body: " + err.Error()})
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

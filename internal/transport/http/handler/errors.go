package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errUserNotFound       = "User not found"
	errUserAlreadyExists  = "User already exists"
	errEmailAlreadyExists = "Email already exists"
	errPasswordTooLong    = "Password must be at most 72 bytes"
)

// writeError maps domain errors onto HTTP responses. Backend failures are
// logged with their detail and reported generically.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var missing *domain.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error(), "fields": missing.Fields})
	case errors.Is(err, domain.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": errPasswordTooLong})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": errEmailAlreadyExists})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": errUserAlreadyExists})
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

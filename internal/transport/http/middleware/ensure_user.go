package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const UserKey = "user"

type userLookup interface {
	GetUser(ctx context.Context, id string) (*domain.UserSummary, error)
}

// EnsureUser runs after Auth. It loads the token subject and stores it under
// UserKey; a valid token for a deleted user gets 401.
func EnsureUser(users userLookup, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetUser(c.Request.Context(), c.GetString(UserIDKey))
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			logger.ErrorContext(c.Request.Context(), "ensure user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}
		c.Set(UserKey, user)
		c.Next()
	}
}

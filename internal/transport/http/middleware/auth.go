package middleware

import (
	"net/http"

	"github.com/ErlanBelekov/account-service/internal/guard"
	ctxlog "github.com/ErlanBelekov/account-service/internal/log"
	"github.com/ErlanBelekov/account-service/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	errNotFound     = "Not found"
	errInvalidToken = "Invalid token"

	// Context keys set on Authenticated requests.
	UserIDKey = "userID"
	ClaimsKey = "claims"
)

type authConfig struct {
	exposeReasons bool
}

type AuthOption func(*authConfig)

// WithRejectionDetail adds a "reason" field (expired, invalid, other) to
// rejected responses. Off by default: every rejection looks the same.
func WithRejectionDetail(expose bool) AuthOption {
	return func(c *authConfig) { c.exposeReasons = expose }
}

// Auth protects a route with the guard. A request without an Authorization
// header is forwarded to the not-found outcome rather than a 401; a request
// with a bad token gets 400.
func Auth(g *guard.Guard, opts ...AuthOption) gin.HandlerFunc {
	var cfg authConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c *gin.Context) {
		out := g.Evaluate(c.GetHeader("Authorization"))
		metrics.GuardOutcomesTotal.WithLabelValues(out.Status.String(), out.Kind().String()).Inc()

		switch out.Status {
		case guard.Authenticated:
			c.Set(UserIDKey, out.Claims.SubjectID)
			c.Set(ClaimsKey, out.Claims)
			c.Request = c.Request.WithContext(ctxlog.WithUserID(c.Request.Context(), out.Claims.SubjectID))
			c.Next()
		case guard.NotApplicable:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errNotFound})
		default:
			body := gin.H{"error": errInvalidToken}
			if cfg.exposeReasons {
				body["reason"] = out.Kind().String()
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, body)
		}
	}
}

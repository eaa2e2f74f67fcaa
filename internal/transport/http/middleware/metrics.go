package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/account-service/internal/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit no route, so scanners probing
// random paths cannot grow the label set.
const unmatchedRoute = "unmatched"

// Metrics records latency and count per route template ("/users/:id",
// never the concrete id). Probe paths are skipped.
func Metrics(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			return
		}
		if route == "" {
			route = unmatchedRoute
		}

		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	}
}

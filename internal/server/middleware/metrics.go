package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/getsignpost/signpost/internal/observability"
)

// routeNameKey is the gin context key under which handlers record the
// matched route name for metric labeling.
const routeNameKey = "matchedRoute"

// SetMatchedRoute records the matched route name for the current
// request so the metrics middleware can label it.
func SetMatchedRoute(c *gin.Context, name string) {
	c.Set(routeNameKey, name)
}

// Metrics returns a middleware that records request counts and
// durations.
func Metrics(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := ""
		if name, ok := c.Get(routeNameKey); ok {
			if s, ok := name.(string); ok {
				route = s
			}
		}

		metrics.ObserveRequest(
			c.Request.Method,
			route,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

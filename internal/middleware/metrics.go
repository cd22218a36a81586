package middleware

import (
	"github.com/SscSPs/job_tracker_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies per route template, so that
// path parameters do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if route == "/metrics" {
			c.Next()
			return
		}
		done := metrics.HTTPRequestStarted(c.Request.Method, route)
		c.Next()
		done(c.Writer.Status())
	}
}

// Package middleware holds gin middleware tied to internal services.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/horarium/timetable-api/internal/service"
)

// Metrics records per-request counters and latency. Routed path templates
// are used as labels to keep cardinality bounded.
func Metrics(metrics service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

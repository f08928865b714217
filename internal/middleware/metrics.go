package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/registrar-labs/course-registry-api/internal/service"
)

// Metrics returns middleware that captures request metrics using the provided
// service.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())
		metricsSvc.RecordHTTPRequest(c.Request.Method, path, status, duration)
	}
}

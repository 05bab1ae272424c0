package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Akashdhk/Housemate/pkg/telemetry"
)

// Metrics creates a middleware recording a request counter and a latency
// histogram per route. Metric creation failures disable recording rather
// than failing requests.
func Metrics() gin.HandlerFunc {
	counter, counterErr := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "http.server.requests",
		Description: "Number of HTTP requests handled",
		Unit:        "{request}",
	})
	histogram, histErr := telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "http.server.duration",
		Description: "HTTP request latency",
		Unit:        "ms",
	})

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath is the route template; empty for unmatched requests
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		ctx := c.Request.Context()
		if counterErr == nil {
			counter.Inc(ctx,
				telemetry.MethodAttr(c.Request.Method),
				telemetry.PathAttr(path),
				telemetry.StatusCodeAttr(c.Writer.Status()),
			)
		}
		if histErr == nil {
			histogram.Record(ctx, float64(time.Since(start).Milliseconds()),
				telemetry.MethodAttr(c.Request.Method),
				telemetry.PathAttr(path),
				telemetry.StatusCodeAttr(c.Writer.Status()),
			)
		}
	}
}

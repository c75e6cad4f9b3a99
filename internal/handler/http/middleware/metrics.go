package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aaryan658/proof-of-life/internal/telemetry"
)

// Metrics records request volume, status-code distribution, and latency
// into the process-wide Prometheus collectors.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		telemetry.RequestsTotal.Inc()
		start := time.Now()

		c.Next()

		telemetry.RequestDuration.Observe(time.Since(start).Seconds())
		telemetry.ResponsesTotal.WithLabelValues(strconv.Itoa(c.Writer.Status())).Inc()
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aaryan658/proof-of-life/internal/telemetry"
)

const RequestIDKey = "request_id"

// Logging assigns a request id, logs request start/completion, and stashes
// a request-scoped logger in the gin context for handlers to pull out.
func Logging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		reqLogger := telemetry.WithRequestID(logger, requestID)
		c.Set("logger", reqLogger)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		reqLogger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
		)
	}
}

// LoggerFrom returns the request-scoped logger Logging attached to c,
// falling back to fallback if none is present (e.g. in unit tests that
// call a handler without the full middleware chain).
func LoggerFrom(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return fallback
}

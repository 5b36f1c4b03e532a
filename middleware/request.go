package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id (reusing an incoming
// X-Request-ID), stores a request-scoped logger under "logger" and logs the
// outcome once the handler returns.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)

		reqLogger := logger.With(zap.String("requestId", id))
		c.Set("logger", reqLogger)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("Request failed", fields...)
		case c.Writer.Status() >= 400:
			reqLogger.Warn("Request rejected", fields...)
		default:
			reqLogger.Info("Request served", fields...)
		}
	}
}

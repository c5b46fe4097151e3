package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentorly/utils"
)

// RequestLogger attaches a request-scoped logger to the context and logs
// each request once it completes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		logger := base.With(zap.String("request_id", requestID))
		c.Set(utils.LoggerContextKey, logger)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", getClientIP(c)),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

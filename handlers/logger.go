package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorly/utils"
)

// getLogger retrieves the request logger set by middleware, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(utils.LoggerContextKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

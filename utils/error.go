package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:    "internal",
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, code, message, details string) {
	Logger := GetLogger()
	if status >= http.StatusInternalServerError {
		Logger.Error(message, zap.String("code", code), zap.String("details", details))
	} else {
		Logger.Warn(message, zap.String("code", code), zap.String("details", details))
	}
	c.JSON(status, ErrorResponse{Code: code, Message: message, Details: details})
}

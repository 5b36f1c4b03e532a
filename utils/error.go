package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("requestId", c.GetString("requestID")))

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

// JSONError sends a standardized JSON error response. Server errors are
// logged at error level, client errors at warn.
func JSONError(c *gin.Context, status int, code, message, details string) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("code", code),
		zap.String("details", details),
		zap.String("requestId", c.GetString("requestID")),
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, fields...)
	} else {
		GetLogger().Warn(message, fields...)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message, Details: details})
}

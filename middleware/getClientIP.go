package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP prefers proxy headers and falls back to gin's view of the
// remote address.
func getClientIP(c *gin.Context) string {
	// X-Forwarded-For may hold a comma-separated chain; the first hop is the client.
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	return c.ClientIP()
}

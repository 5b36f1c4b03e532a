package handlers

import (
	"net/http"

	"gkmslots/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last health snapshot and the week being served.
func HealthHandler(weekID func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status := http.StatusOK
		if !health.Healthy() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":    health.Status,
			"services":  health.Services,
			"checkedAt": health.CheckedAt,
			"weekId":    weekID(),
			"message":   "Hi, I'm the GKM practice room board",
		})
	}
}

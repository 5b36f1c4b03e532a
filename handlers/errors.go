package handlers

import (
	"net/http"

	"gkmslots/services/board"
	"gkmslots/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps rejected requests to 400/404 and everything else to 500.
func writeError(c *gin.Context, err error, message string) {
	if be, ok := board.AsBoardError(err); ok {
		status := http.StatusBadRequest
		if be.Code == board.CodeNotFound {
			status = http.StatusNotFound
		}
		utils.JSONError(c, status, be.Code, be.Message, "")
		return
	}
	getLogger(c).Error(message, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal", message, err.Error())
}

func writeBindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalidRequest", "Invalid request payload", err.Error())
}

// NotFoundHandler answers unknown routes in the same error shape.
func NotFoundHandler(c *gin.Context) {
	utils.JSONError(c, http.StatusNotFound, board.CodeNotFound, "Route not found", c.Request.Method+" "+c.Request.URL.Path)
}

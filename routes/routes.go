package routes

import (
	"time"

	"gkmslots/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterSlotRoutes registers the week header and slot grid endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/week", hb.GetWeekHandler)

	api := r.Group("/api/slots")
	{
		api.GET("", hb.GetSlotsHandler)
		api.GET("/stream", hb.StreamSlotsHandler)
		api.PUT("/:key", hb.BookSlotHandler)
		api.PUT("/:key/draft", hb.DraftSlotHandler)
		api.DELETE("/:key", hb.ClearSlotHandler)
	}
}

// RegisterNoteRoutes registers the notes wall endpoints.
func RegisterNoteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notes")
	{
		api.GET("", hb.GetNotesHandler)
		api.GET("/stream", hb.StreamNotesHandler)
		api.POST("", hb.AddNoteHandler)
		api.DELETE("/:id", hb.RemoveNoteHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterNoteRoutes(r, hb)
	r.NoRoute(handlers.NotFoundHandler)
}

// File: gkmslots/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Week endpoints
	GetWeekHandler gin.HandlerFunc

	// Slot endpoints
	GetSlotsHandler    gin.HandlerFunc
	BookSlotHandler    gin.HandlerFunc
	DraftSlotHandler   gin.HandlerFunc
	ClearSlotHandler   gin.HandlerFunc
	StreamSlotsHandler gin.HandlerFunc

	// Notes endpoints
	GetNotesHandler    gin.HandlerFunc
	AddNoteHandler     gin.HandlerFunc
	RemoveNoteHandler  gin.HandlerFunc
	StreamNotesHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from a board handler.
func NewHandlerBundle(bh *BoardHandler, health gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		GetWeekHandler: bh.GetWeekHandler,

		GetSlotsHandler:    bh.GetSlotsHandler,
		BookSlotHandler:    bh.BookSlotHandler,
		DraftSlotHandler:   bh.DraftSlotHandler,
		ClearSlotHandler:   bh.ClearSlotHandler,
		StreamSlotsHandler: bh.StreamSlotsHandler,

		GetNotesHandler:    bh.GetNotesHandler,
		AddNoteHandler:     bh.AddNoteHandler,
		RemoveNoteHandler:  bh.RemoveNoteHandler,
		StreamNotesHandler: bh.StreamNotesHandler,

		HealthHandler: health,
	}
}

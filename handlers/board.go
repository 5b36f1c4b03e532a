package handlers

import (
	"net/http"
	"strings"

	"gkmslots/models"
	"gkmslots/services/board"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BoardHandler serves the weekly booking board.
type BoardHandler struct {
	Service board.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(svc board.BoardService) *BoardHandler {
	return &BoardHandler{Service: svc}
}

// GetWeekHandler returns the current week id and occupancy.
func (h *BoardHandler) GetWeekHandler(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to load week")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *BoardHandler) GetSlotsHandler(c *gin.Context) {
	slots, err := h.Service.Slots(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to load slots")
		return
	}
	c.JSON(http.StatusOK, slots)
}

// BookSlotHandler writes {name} into the slot named by the path.
func (h *BoardHandler) BookSlotHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	key := c.Param("key")
	if err := h.Service.BookSlot(c.Request.Context(), key, req.Name); err != nil {
		writeError(c, err, "Failed to book slot")
		return
	}
	getLogger(c).Info("Slot booked", zap.String("key", key))
	c.JSON(http.StatusOK, gin.H{"key": key, "name": strings.TrimSpace(req.Name)})
}

// DraftSlotHandler accepts a partially typed name. The write happens later,
// so the response is 202.
func (h *BoardHandler) DraftSlotHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if err := h.Service.DraftSlot(c.Param("key"), req.Name); err != nil {
		writeError(c, err, "Failed to save draft")
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *BoardHandler) ClearSlotHandler(c *gin.Context) {
	key := c.Param("key")
	if err := h.Service.ClearSlot(c.Request.Context(), key); err != nil {
		writeError(c, err, "Failed to clear slot")
		return
	}
	getLogger(c).Info("Slot cleared", zap.String("key", key))
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) GetNotesHandler(c *gin.Context) {
	notes, err := h.Service.Notes(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to load notes")
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *BoardHandler) AddNoteHandler(c *gin.Context) {
	var req models.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	note, err := h.Service.AddNote(c.Request.Context(), req.Text, req.Author)
	if err != nil {
		writeError(c, err, "Failed to add note")
		return
	}
	getLogger(c).Info("Note added", zap.String("id", note.ID))
	c.JSON(http.StatusCreated, note)
}

func (h *BoardHandler) RemoveNoteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.RemoveNote(c.Request.Context(), id); err != nil {
		writeError(c, err, "Failed to remove note")
		return
	}
	c.Status(http.StatusNoContent)
}

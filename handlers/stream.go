package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StreamHeartbeat is how often an idle stream sends a ping event.
var StreamHeartbeat = 30 * time.Second

// StreamSlotsHandler pushes the slot mapping as "slots" server-sent events:
// once on connect, then after every change.
func (h *BoardHandler) StreamSlotsHandler(c *gin.Context) {
	streamUpdates(c, "slots", h.Service.SubscribeSlots)
}

// StreamNotesHandler pushes the notes wall (newest first) as "notes" events.
func (h *BoardHandler) StreamNotesHandler(c *gin.Context) {
	streamUpdates(c, "notes", h.Service.SubscribeNotes)
}

func streamUpdates[T any](c *gin.Context, event string, subscribe func(context.Context, func(T)) (func(), error)) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	// Only the newest state matters; a slow client skips intermediate ones.
	updates := make(chan T, 1)
	push := func(v T) {
		select {
		case <-updates:
		default:
		}
		updates <- v
	}

	dispose, err := subscribe(ctx, push)
	if err != nil {
		writeError(c, err, "Failed to subscribe")
		return
	}
	defer dispose()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(StreamHeartbeat)
	defer heartbeat.Stop()

	logger.Debug("Stream opened", zap.String("event", event))
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v := <-updates:
			c.SSEvent(event, v)
			return true
		case t := <-heartbeat.C:
			c.SSEvent("ping", t.Unix())
			return true
		}
	})
	logger.Debug("Stream closed", zap.String("event", event))
}


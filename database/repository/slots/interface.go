// File: database/repository/slots/interface.go
package slotsRepo

import (
	"context"
	"maps"

	"gkmslots/database/events"

	"go.uber.org/zap"
)

// SlotRepository stores the bookings of the current week, keyed by
// canonical slot key. Writes are last-writer-wins.
type SlotRepository interface {
	// ReadAll returns every booking of the current week.
	ReadAll(ctx context.Context) (map[string]string, error)
	// Subscribe calls fn with the current bookings before returning and
	// again after every change. The returned function stops the
	// subscription and must not be called from inside fn.
	Subscribe(ctx context.Context, fn func(map[string]string)) (func(), error)
	// Write books key for name, replacing any previous occupant.
	Write(ctx context.Context, key, name string) error
	// Remove frees key. Removing a free key is a no-op.
	Remove(ctx context.Context, key string) error
	// BatchUpdate applies several writes at once; a nil name frees the key.
	BatchUpdate(ctx context.Context, updates map[string]*string) error
}

func equalSlots(a, b map[string]string) bool {
	return maps.Equal(a, b)
}

func publish(ctx context.Context, n events.Notifier, topic string, logger *zap.Logger) {
	if err := n.Publish(ctx, topic); err != nil {
		logger.Warn("failed to publish change", zap.String("topic", topic), zap.Error(err))
	}
}

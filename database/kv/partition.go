// File: database/kv/partition.go
package kv

import (
	"context"
	"fmt"
	"sync"

	"gkmslots/utils"

	"go.uber.org/zap"
)

// Partition scopes the local slot and note blobs to the current week. It
// keeps a "last seen week" marker next to the blobs and clears them when the
// marker no longer matches. Adapters sharing a store must share one
// Partition so their read-modify-write cycles do not interleave.
type Partition struct {
	Store  Store
	Clock  utils.Clock
	Logger *zap.Logger

	mu sync.Mutex
}

func NewPartition(store Store, clock utils.Clock, logger *zap.Logger) *Partition {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Partition{Store: store, Clock: clock, Logger: logger}
}

func (p *Partition) Lock()   { p.mu.Lock() }
func (p *Partition) Unlock() { p.mu.Unlock() }

// Ensure returns the current week and whether the stored blobs were just
// cleared because they belonged to another week. Callers hold the lock.
func (p *Partition) Ensure(ctx context.Context) (string, bool, error) {
	current := utils.CurrentWeekID(p.Clock)

	saved, _, err := p.Store.Get(ctx, utils.LocalWeekKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read week marker: %w", err)
	}
	if saved == current {
		return current, false, nil
	}

	// The marker moves only once the old blobs are gone, so a failed clear
	// is retried by the next call.
	if err := p.Store.Remove(ctx, utils.LocalSlotsKey, utils.LocalNotesKey); err != nil {
		return "", false, fmt.Errorf("failed to clear stale week: %w", err)
	}
	if err := p.Store.Set(ctx, utils.LocalWeekKey, current); err != nil {
		return "", false, fmt.Errorf("failed to write week marker: %w", err)
	}
	p.Logger.Info("local board reset for new week",
		zap.String("previousWeek", saved),
		zap.String("week", current))
	return current, true, nil
}

// Save writes blob under key and stamps the marker with the current week.
// Callers hold the lock.
func (p *Partition) Save(ctx context.Context, key, blob string) error {
	if err := p.Store.Set(ctx, utils.LocalWeekKey, utils.CurrentWeekID(p.Clock)); err != nil {
		return fmt.Errorf("failed to write week marker: %w", err)
	}
	if err := p.Store.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

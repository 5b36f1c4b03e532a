// File: database/repository/slots/local.go
package slotsRepo

import (
	"context"
	"encoding/json"
	"fmt"

	"gkmslots/database/events"
	"gkmslots/database/kv"
	"gkmslots/utils"

	"go.uber.org/zap"
)

// localSlotRepo keeps the whole week as one JSON blob in a kv.Store and
// rewrites it on every mutation.
type localSlotRepo struct {
	partition *kv.Partition
	notifier  events.Notifier
	logger    *zap.Logger
}

// NewLocalSlotRepo constructs a SlotRepository over the partition's store.
func NewLocalSlotRepo(partition *kv.Partition, notifier events.Notifier, logger *zap.Logger) SlotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &localSlotRepo{partition: partition, notifier: notifier, logger: logger}
}

func (r *localSlotRepo) ReadAll(ctx context.Context) (map[string]string, error) {
	r.partition.Lock()
	defer r.partition.Unlock()
	return r.load(ctx)
}

func (r *localSlotRepo) Subscribe(ctx context.Context, fn func(map[string]string)) (func(), error) {
	return events.Watch(ctx, events.WatchOptions[map[string]string]{
		Notifier: r.notifier,
		Topic:    utils.SlotsTopic,
		Load:     r.ReadAll,
		Equal:    equalSlots,
		Logger:   r.logger,
	}, fn)
}

func (r *localSlotRepo) Write(ctx context.Context, key, name string) error {
	return r.BatchUpdate(ctx, map[string]*string{key: &name})
}

func (r *localSlotRepo) Remove(ctx context.Context, key string) error {
	return r.BatchUpdate(ctx, map[string]*string{key: nil})
}

func (r *localSlotRepo) BatchUpdate(ctx context.Context, updates map[string]*string) error {
	if len(updates) == 0 {
		return nil
	}
	if err := r.update(ctx, updates); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.SlotsTopic, r.logger)
	return nil
}

func (r *localSlotRepo) update(ctx context.Context, updates map[string]*string) error {
	r.partition.Lock()
	defer r.partition.Unlock()

	slots, err := r.load(ctx)
	if err != nil {
		return err
	}
	for key, name := range updates {
		if name == nil {
			delete(slots, key)
		} else {
			slots[key] = *name
		}
	}

	blob, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to encode slots: %w", err)
	}
	return r.partition.Save(ctx, utils.LocalSlotsKey, string(blob))
}

// load runs the week check and decodes the blob. Callers hold the lock.
func (r *localSlotRepo) load(ctx context.Context) (map[string]string, error) {
	if _, _, err := r.partition.Ensure(ctx); err != nil {
		return nil, err
	}

	blob, ok, err := r.partition.Store.Get(ctx, utils.LocalSlotsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read slots: %w", err)
	}
	slots := make(map[string]string)
	if !ok {
		return slots, nil
	}
	if err := json.Unmarshal([]byte(blob), &slots); err != nil {
		r.logger.Debug("discarding unreadable slots blob", zap.Error(err))
		return make(map[string]string), nil
	}
	if slots == nil {
		slots = make(map[string]string)
	}
	return slots, nil
}

// File: database/repository/slots/remote.go
package slotsRepo

import (
	"context"
	"encoding/json"
	"time"

	"gkmslots/database/events"
	"gkmslots/database/tree"
	"gkmslots/utils"

	"go.uber.org/zap"
)

// remoteSlotRepo addresses every booking individually at
// weeks/<WeekId>/slots/<SlotKey>. A new week is a new, empty path.
type remoteSlotRepo struct {
	tree     tree.Tree
	clock    utils.Clock
	notifier events.Notifier
	poll     time.Duration
	logger   *zap.Logger
}

// NewRemoteSlotRepo constructs a SlotRepository over a remote tree. poll
// makes subscriptions also pick up writes made by other clients of the tree.
func NewRemoteSlotRepo(t tree.Tree, clock utils.Clock, notifier events.Notifier, poll time.Duration, logger *zap.Logger) SlotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &remoteSlotRepo{tree: t, clock: clock, notifier: notifier, poll: poll, logger: logger}
}

func (r *remoteSlotRepo) path() string {
	return tree.WeekPath(utils.CurrentWeekID(r.clock), "slots")
}

func (r *remoteSlotRepo) ReadAll(ctx context.Context) (map[string]string, error) {
	children, err := r.tree.Children(ctx, r.path())
	if err != nil {
		return nil, err
	}
	slots := make(map[string]string, len(children))
	for key, raw := range children {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			r.logger.Debug("skipping non-string slot value", zap.String("key", key))
			continue
		}
		slots[key] = name
	}
	return slots, nil
}

func (r *remoteSlotRepo) Subscribe(ctx context.Context, fn func(map[string]string)) (func(), error) {
	return events.Watch(ctx, events.WatchOptions[map[string]string]{
		Notifier: r.notifier,
		Topic:    utils.SlotsTopic,
		Poll:     r.poll,
		Load:     r.ReadAll,
		Equal:    equalSlots,
		Logger:   r.logger,
	}, fn)
}

func (r *remoteSlotRepo) Write(ctx context.Context, key, name string) error {
	if err := r.tree.SetChild(ctx, r.path(), key, name); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.SlotsTopic, r.logger)
	return nil
}

func (r *remoteSlotRepo) Remove(ctx context.Context, key string) error {
	if err := r.tree.DeleteChild(ctx, r.path(), key); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.SlotsTopic, r.logger)
	return nil
}

func (r *remoteSlotRepo) BatchUpdate(ctx context.Context, updates map[string]*string) error {
	if len(updates) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(updates))
	for key, name := range updates {
		if name == nil {
			values[key] = nil
		} else {
			values[key] = *name
		}
	}
	if err := r.tree.UpdateChildren(ctx, r.path(), values); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.SlotsTopic, r.logger)
	return nil
}

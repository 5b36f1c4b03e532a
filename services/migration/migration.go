package migration

import (
	"context"
	"encoding/json"
	"fmt"

	"gkmslots/database/kv"
	notesRepo "gkmslots/database/repository/notes"
	slotsRepo "gkmslots/database/repository/slots"
	"gkmslots/models"
	"gkmslots/utils"

	"go.uber.org/zap"
)

const flagDone = "true"

// Runner performs the one-time upgrades of persisted board data. Each
// migration is guarded by its own flag in Flags and runs at most once per
// store.
type Runner struct {
	// Flags holds the done-flags.
	Flags kv.Store
	// Local is the store earlier versions kept the board in. Nil skips the
	// storage-location migration.
	Local kv.Store
	// Slots and Notes are the adapters the board is served from.
	Slots  slotsRepo.SlotRepository
	Notes  notesRepo.NoteRepository
	Clock  utils.Clock
	Logger *zap.Logger
}

// Report describes what one migration did.
type Report struct {
	Name    string
	Skipped bool // flag was already set
	Slots   int  // bookings moved or rekeyed
	Notes   int  // notes moved
}

// Run executes the storage-location migration and then the key-format
// migration, stopping at the first error. A failed migration leaves its
// flag unset and is retried by the next Run.
func (r *Runner) Run(ctx context.Context) ([]Report, error) {
	var reports []Report

	if r.Local != nil {
		rep, err := r.MigrateStorage(ctx)
		if err != nil {
			return reports, fmt.Errorf("storage migration: %w", err)
		}
		reports = append(reports, rep)
	}

	rep, err := r.MigrateSlotKeys(ctx)
	if err != nil {
		return reports, fmt.Errorf("slot key migration: %w", err)
	}
	reports = append(reports, rep)

	for _, rep := range reports {
		r.logger().Info("migration finished",
			zap.String("migration", rep.Name),
			zap.Bool("skipped", rep.Skipped),
			zap.Int("slots", rep.Slots),
			zap.Int("notes", rep.Notes))
	}
	return reports, nil
}

// MigrateStorage copies the current week's board from the local store into
// the adapters, then deletes the local copy. A board saved in an earlier
// week is not copied but is still deleted.
func (r *Runner) MigrateStorage(ctx context.Context) (Report, error) {
	rep := Report{Name: utils.MigratedRemoteFlag}
	done, err := r.isDone(ctx, utils.MigratedRemoteFlag)
	if err != nil || done {
		rep.Skipped = done
		return rep, err
	}

	marker, _, err := r.Local.Get(ctx, utils.LocalWeekKey)
	if err != nil {
		return rep, fmt.Errorf("failed to read week marker: %w", err)
	}

	if marker == utils.CurrentWeekID(r.Clock) {
		slots := r.localSlots(ctx)
		if len(slots) > 0 {
			updates := make(map[string]*string, len(slots))
			for key, name := range slots {
				name := name
				updates[key] = &name
			}
			if err := r.Slots.BatchUpdate(ctx, updates); err != nil {
				return rep, fmt.Errorf("failed to copy slots: %w", err)
			}
			rep.Slots = len(slots)
		}

		notes := r.localNotes(ctx)
		if len(notes) > 0 {
			updates := make(map[string]*models.Note, len(notes))
			for i := range notes {
				updates[notes[i].ID] = &notes[i]
			}
			if err := r.Notes.BatchUpdate(ctx, updates); err != nil {
				return rep, fmt.Errorf("failed to copy notes: %w", err)
			}
			rep.Notes = len(notes)
		}
	} else if marker != "" {
		r.logger().Info("local board is from another week, dropping it",
			zap.String("week", marker))
	}

	if err := r.Local.Remove(ctx, utils.LocalSlotsKey, utils.LocalNotesKey, utils.LocalWeekKey); err != nil {
		return rep, fmt.Errorf("failed to clear local board: %w", err)
	}
	return rep, r.markDone(ctx, utils.MigratedRemoteFlag)
}

// MigrateSlotKeys rewrites day-name keys of the current week ("Monday-9",
// "Pazartesi-9-h1") to canonical keys in a single batch. Keys with unknown
// day names are left alone.
func (r *Runner) MigrateSlotKeys(ctx context.Context) (Report, error) {
	rep := Report{Name: utils.MigratedSlotKeysFlag}
	done, err := r.isDone(ctx, utils.MigratedSlotKeysFlag)
	if err != nil || done {
		rep.Skipped = done
		return rep, err
	}

	slots, err := r.Slots.ReadAll(ctx)
	if err != nil {
		return rep, fmt.Errorf("failed to read slots: %w", err)
	}

	updates := LegacyKeyUpdates(slots)
	if len(updates) > 0 {
		if err := r.Slots.BatchUpdate(ctx, updates); err != nil {
			return rep, fmt.Errorf("failed to rewrite slot keys: %w", err)
		}
		for _, v := range updates {
			if v == nil {
				rep.Slots++
			}
		}
	}
	return rep, r.markDone(ctx, utils.MigratedSlotKeysFlag)
}

// LegacyKeyUpdates returns the batch that moves every legacy key of slots
// to its canonical key: the value under the new key and nil under the old.
func LegacyKeyUpdates(slots map[string]string) map[string]*string {
	updates := make(map[string]*string)
	for key, name := range slots {
		newKey, ok := utils.MigrateLegacyKey(key)
		if !ok {
			continue
		}
		name := name
		updates[newKey] = &name
		updates[key] = nil
	}
	return updates
}

func (r *Runner) localSlots(ctx context.Context) map[string]string {
	blob, ok, err := r.Local.Get(ctx, utils.LocalSlotsKey)
	if err != nil || !ok {
		return nil
	}
	var slots map[string]string
	if err := json.Unmarshal([]byte(blob), &slots); err != nil {
		r.logger().Debug("local slots unreadable, nothing to copy", zap.Error(err))
		return nil
	}
	return slots
}

func (r *Runner) localNotes(ctx context.Context) []models.Note {
	blob, ok, err := r.Local.Get(ctx, utils.LocalNotesKey)
	if err != nil || !ok {
		return nil
	}
	var notes []models.Note
	if err := json.Unmarshal([]byte(blob), &notes); err != nil {
		r.logger().Debug("local notes unreadable, nothing to copy", zap.Error(err))
		return nil
	}
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != "" {
			kept = append(kept, n)
		}
	}
	return kept
}

func (r *Runner) isDone(ctx context.Context, flag string) (bool, error) {
	v, _, err := r.Flags.Get(ctx, flag)
	if err != nil {
		return false, fmt.Errorf("failed to read flag %s: %w", flag, err)
	}
	return v == flagDone, nil
}

func (r *Runner) markDone(ctx context.Context, flag string) error {
	if err := r.Flags.Set(ctx, flag, flagDone); err != nil {
		return fmt.Errorf("failed to set flag %s: %w", flag, err)
	}
	return nil
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

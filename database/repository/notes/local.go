// File: database/repository/notes/local.go
package notesRepo

import (
	"context"
	"encoding/json"
	"fmt"

	"gkmslots/database/events"
	"gkmslots/database/kv"
	"gkmslots/models"
	"gkmslots/utils"

	"go.uber.org/zap"
)

// localNoteRepo keeps the notes as one JSON array, newest first, capped at
// a fixed number of entries.
type localNoteRepo struct {
	partition *kv.Partition
	notifier  events.Notifier
	limit     int
	logger    *zap.Logger
}

// NewLocalNoteRepo constructs a NoteRepository over the partition's store
// that keeps at most limit notes.
func NewLocalNoteRepo(partition *kv.Partition, notifier events.Notifier, limit int, logger *zap.Logger) NoteRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = utils.DefaultNotesCap
	}
	return &localNoteRepo{partition: partition, notifier: notifier, limit: limit, logger: logger}
}

func (r *localNoteRepo) ReadAll(ctx context.Context) ([]models.Note, error) {
	r.partition.Lock()
	defer r.partition.Unlock()
	return r.load(ctx)
}

func (r *localNoteRepo) Subscribe(ctx context.Context, fn func([]models.Note)) (func(), error) {
	return events.Watch(ctx, events.WatchOptions[[]models.Note]{
		Notifier: r.notifier,
		Topic:    utils.NotesTopic,
		Load: func(ctx context.Context) ([]models.Note, error) {
			notes, err := r.ReadAll(ctx)
			if err != nil {
				return nil, err
			}
			SortNewestFirst(notes)
			return notes, nil
		},
		Equal:  equalNotes,
		Logger: r.logger,
	}, fn)
}

func (r *localNoteRepo) Add(ctx context.Context, note models.Note) error {
	return r.BatchUpdate(ctx, map[string]*models.Note{note.ID: &note})
}

func (r *localNoteRepo) Remove(ctx context.Context, id string) error {
	return r.BatchUpdate(ctx, map[string]*models.Note{id: nil})
}

func (r *localNoteRepo) BatchUpdate(ctx context.Context, updates map[string]*models.Note) error {
	if len(updates) == 0 {
		return nil
	}
	if err := r.update(ctx, updates); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.NotesTopic, r.logger)
	return nil
}

func (r *localNoteRepo) update(ctx context.Context, updates map[string]*models.Note) error {
	r.partition.Lock()
	defer r.partition.Unlock()

	notes, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, n := range notes {
		if _, touched := updates[n.ID]; !touched {
			kept = append(kept, n)
		}
	}
	var added []models.Note
	for _, n := range updates {
		if n != nil {
			added = append(added, *n)
		}
	}
	SortNewestFirst(added)
	notes = append(added, kept...)
	if len(notes) > r.limit {
		notes = notes[:r.limit]
	}

	blob, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	return r.partition.Save(ctx, utils.LocalNotesKey, string(blob))
}

// load runs the week check and decodes the blob. Older clients stored the
// notes as free text; that reads as an empty wall. Callers hold the lock.
func (r *localNoteRepo) load(ctx context.Context) ([]models.Note, error) {
	if _, _, err := r.partition.Ensure(ctx); err != nil {
		return nil, err
	}

	blob, ok, err := r.partition.Store.Get(ctx, utils.LocalNotesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	if !ok {
		return []models.Note{}, nil
	}
	var notes []models.Note
	if err := json.Unmarshal([]byte(blob), &notes); err != nil {
		r.logger.Debug("discarding unreadable notes blob", zap.Error(err))
		return []models.Note{}, nil
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

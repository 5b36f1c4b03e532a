// File: database/repository/notes/remote.go
package notesRepo

import (
	"context"
	"encoding/json"
	"time"

	"gkmslots/database/events"
	"gkmslots/database/tree"
	"gkmslots/models"
	"gkmslots/utils"

	"go.uber.org/zap"
)

// remoteNoteRepo stores each note at weeks/<WeekId>/notes/<id>.
type remoteNoteRepo struct {
	tree     tree.Tree
	clock    utils.Clock
	notifier events.Notifier
	poll     time.Duration
	logger   *zap.Logger
}

// NewRemoteNoteRepo constructs a NoteRepository over a remote tree.
func NewRemoteNoteRepo(t tree.Tree, clock utils.Clock, notifier events.Notifier, poll time.Duration, logger *zap.Logger) NoteRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &remoteNoteRepo{tree: t, clock: clock, notifier: notifier, poll: poll, logger: logger}
}

func (r *remoteNoteRepo) path() string {
	return tree.WeekPath(utils.CurrentWeekID(r.clock), "notes")
}

func (r *remoteNoteRepo) ReadAll(ctx context.Context) ([]models.Note, error) {
	children, err := r.tree.Children(ctx, r.path())
	if err != nil {
		return nil, err
	}
	notes := make([]models.Note, 0, len(children))
	for key, raw := range children {
		var n models.Note
		if err := json.Unmarshal(raw, &n); err != nil {
			r.logger.Debug("skipping unreadable note", zap.String("id", key))
			continue
		}
		if n.ID == "" {
			n.ID = key
		}
		notes = append(notes, n)
	}
	SortNewestFirst(notes)
	return notes, nil
}

func (r *remoteNoteRepo) Subscribe(ctx context.Context, fn func([]models.Note)) (func(), error) {
	return events.Watch(ctx, events.WatchOptions[[]models.Note]{
		Notifier: r.notifier,
		Topic:    utils.NotesTopic,
		Poll:     r.poll,
		Load:     r.ReadAll,
		Equal:    equalNotes,
		Logger:   r.logger,
	}, fn)
}

func (r *remoteNoteRepo) Add(ctx context.Context, note models.Note) error {
	if err := r.tree.SetChild(ctx, r.path(), note.ID, note); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.NotesTopic, r.logger)
	return nil
}

func (r *remoteNoteRepo) Remove(ctx context.Context, id string) error {
	if err := r.tree.DeleteChild(ctx, r.path(), id); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.NotesTopic, r.logger)
	return nil
}

func (r *remoteNoteRepo) BatchUpdate(ctx context.Context, updates map[string]*models.Note) error {
	if len(updates) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(updates))
	for id, n := range updates {
		if n == nil {
			values[id] = nil
		} else {
			values[id] = *n
		}
	}
	if err := r.tree.UpdateChildren(ctx, r.path(), values); err != nil {
		return err
	}
	publish(ctx, r.notifier, utils.NotesTopic, r.logger)
	return nil
}

// File: database/repository/notes/interface.go
package notesRepo

import (
	"context"
	"slices"
	"sort"
	"strconv"

	"gkmslots/database/events"
	"gkmslots/models"

	"go.uber.org/zap"
)

// NoteRepository stores the notes wall of the current week, keyed by note id.
type NoteRepository interface {
	// ReadAll returns the notes of the current week. The remote realization
	// returns them newest first; the local one returns them as stored.
	ReadAll(ctx context.Context) ([]models.Note, error)
	// Subscribe calls fn with the notes, newest first, before returning and
	// again after every change. The returned function stops the
	// subscription and must not be called from inside fn.
	Subscribe(ctx context.Context, fn func([]models.Note)) (func(), error)
	Add(ctx context.Context, note models.Note) error
	// Remove deletes the note with id. Removing a missing note is a no-op.
	Remove(ctx context.Context, id string) error
	// BatchUpdate writes several notes at once; a nil note deletes that id.
	BatchUpdate(ctx context.Context, updates map[string]*models.Note) error
}

// SortNewestFirst orders notes by the numeric value of their id, descending.
// Ids that are not numbers sort after all numeric ones, by string, descending.
func SortNewestFirst(notes []models.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, errA := strconv.ParseInt(notes[i].ID, 10, 64)
		b, errB := strconv.ParseInt(notes[j].ID, 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a > b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return notes[i].ID > notes[j].ID
	})
}

func equalNotes(a, b []models.Note) bool {
	return slices.Equal(a, b)
}

func publish(ctx context.Context, n events.Notifier, topic string, logger *zap.Logger) {
	if err := n.Publish(ctx, topic); err != nil {
		logger.Warn("failed to publish change", zap.String("topic", topic), zap.Error(err))
	}
}

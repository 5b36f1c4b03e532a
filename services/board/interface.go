package board

import (
	"context"

	"gkmslots/models"
)

// BoardService is the weekly booking board: the slot grid and the notes wall
// of the current week.
type BoardService interface {
	WeekID() string
	Summary(ctx context.Context) (models.WeekSummary, error)

	Slots(ctx context.Context) (map[string]string, error)
	BookSlot(ctx context.Context, key, name string) error
	ClearSlot(ctx context.Context, key string) error
	// DraftSlot records a name being typed into a cell. Only the last draft
	// of a burst is written, once the cell has been quiet for the debounce
	// delay; an empty draft frees the cell.
	DraftSlot(key, name string) error
	SubscribeSlots(ctx context.Context, fn func(map[string]string)) (func(), error)

	// Notes returns the notes wall, newest first.
	Notes(ctx context.Context) ([]models.Note, error)
	AddNote(ctx context.Context, text, author string) (models.Note, error)
	RemoveNote(ctx context.Context, id string) error
	SubscribeNotes(ctx context.Context, fn func([]models.Note)) (func(), error)

	// Rollover brings storage and live subscribers to the current week and
	// returns it.
	Rollover(ctx context.Context) (string, error)
	// Close drops pending drafts.
	Close()
}

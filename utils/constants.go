// File: utils/constants.go
package utils

// Keys of the local key-value store. The names match what earlier clients
// wrote so existing data keeps loading.
const (
	LocalSlotsKey = "gkm-slots-data"
	LocalNotesKey = "gkm-notes-data"
	LocalWeekKey  = "gkm-current-week"

	// One flag per one-time migration; the value is "true" once done.
	MigratedRemoteFlag   = "gkm-migrated-remote"
	MigratedSlotKeysFlag = "gkm-migrated-slot-keys"
)

// Topics published after every change.
const (
	SlotsTopic = "slots"
	NotesTopic = "notes"
)

// NoteDateLayout formats Note.Date.
const NoteDateLayout = "02.01.2006"

// DefaultNotesCap is the number of notes the local backend keeps.
const DefaultNotesCap = 50

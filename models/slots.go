package models

import "fmt"

// Grid bounds of the practice-room board.
const (
	DayCount   = 5  // Monday..Friday
	FirstHour  = 9  // first bookable block starts 09:00
	LastHour   = 16 // last bookable block starts 16:00 and ends 17:00
	TotalSlots = DayCount * (LastHour - FirstHour + 1)
)

// Half markers for a split full-hour cell.
const (
	HalfNone  = 0 // whole hour
	HalfFirst = 1 // :00–:30
	HalfLast  = 2 // :30–:00
)

// SlotKey identifies one bookable cell of the weekly grid.
type SlotKey struct {
	Day  int `json:"day"`            // 0 = Monday .. 4 = Friday
	Hour int `json:"hour"`           // 9..16, start of the hour block
	Half int `json:"half,omitempty"` // HalfNone, HalfFirst or HalfLast
}

// IsHalf reports whether the key addresses one half of a split cell.
func (k SlotKey) IsHalf() bool {
	return k.Half != HalfNone
}

// String formats k in canonical form: d<day>-<hour> or d<day>-<hour>-h<half>.
func (k SlotKey) String() string {
	if k.IsHalf() {
		return fmt.Sprintf("d%d-%d-h%d", k.Day, k.Hour, k.Half)
	}
	return fmt.Sprintf("d%d-%d", k.Day, k.Hour)
}

// Parent returns the full-hour key a half-slot belongs to.
func (k SlotKey) Parent() SlotKey {
	return SlotKey{Day: k.Day, Hour: k.Hour}
}

// LegacyKey is a slot key written by older clients that used day names
// instead of day indexes, e.g. "Monday-9" or "Pazartesi-9-h1".
type LegacyKey struct {
	DayName string `json:"dayName"`
	Hour    string `json:"hour"`
	Half    string `json:"half,omitempty"` // "h1", "h2" or empty
}

package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"gkmslots/models"
)

// ErrInvalidSlotKey is returned for keys that are not in canonical form or
// fall outside the grid.
var ErrInvalidSlotKey = errors.New("invalid slot key")

// Day-name vocabularies used by legacy keys, Monday first.
var (
	EnglishDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	TurkishDays = []string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma"}
)

var (
	canonicalKeyPattern = regexp.MustCompile(`^d(\d)-(\d{1,2})(?:-h(\d))?$`)
	legacyKeyPattern    = regexp.MustCompile(`^(\D+)-(\d+)(?:-(h[12]))?$`)
)

// FormatFullKey returns the key of a whole-hour cell: d<day>-<hour>.
func FormatFullKey(day, hour int) string {
	return models.SlotKey{Day: day, Hour: hour}.String()
}

// FormatHalfKey returns the key of one half of a split cell: d<day>-<hour>-h<half>.
func FormatHalfKey(day, hour, half int) string {
	return models.SlotKey{Day: day, Hour: hour, Half: half}.String()
}

// FormatKey formats k in canonical form.
func FormatKey(k models.SlotKey) string {
	return k.String()
}

// ParseSlotKey parses and bounds-checks a canonical key.
func ParseSlotKey(key string) (models.SlotKey, error) {
	m := canonicalKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return models.SlotKey{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	day, _ := strconv.Atoi(m[1])
	hour, _ := strconv.Atoi(m[2])
	half := models.HalfNone
	if m[3] != "" {
		half, _ = strconv.Atoi(m[3])
	}

	k := models.SlotKey{Day: day, Hour: hour, Half: half}
	if day < 0 || day >= models.DayCount ||
		hour < models.FirstHour || hour > models.LastHour ||
		(half != models.HalfNone && half != models.HalfFirst && half != models.HalfLast) {
		return models.SlotKey{}, fmt.Errorf("%w: %q out of range", ErrInvalidSlotKey, key)
	}
	// Reject non-canonical spellings such as "d0-09".
	if FormatKey(k) != key {
		return models.SlotKey{}, fmt.Errorf("%w: %q is not canonical", ErrInvalidSlotKey, key)
	}
	return k, nil
}

// AllSlotKeys lists every whole-hour cell, day-major.
func AllSlotKeys() []string {
	keys := make([]string, 0, models.TotalSlots)
	for day := 0; day < models.DayCount; day++ {
		for hour := models.FirstHour; hour <= models.LastHour; hour++ {
			keys = append(keys, FormatFullKey(day, hour))
		}
	}
	return keys
}

// ParseLegacyKey matches <name>-<digits>[-h1|-h2] with a non-numeric name.
func ParseLegacyKey(key string) (models.LegacyKey, bool) {
	m := legacyKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return models.LegacyKey{}, false
	}
	return models.LegacyKey{DayName: m[1], Hour: m[2], Half: m[3]}, true
}

// ResolveDayIndex looks name up in the English and Turkish vocabularies and
// returns -1 when it is in neither.
func ResolveDayIndex(name string) int {
	for _, days := range [][]string{EnglishDays, TurkishDays} {
		for i, d := range days {
			if d == name {
				return i
			}
		}
	}
	return -1
}

// MigrateLegacyKey returns the canonical key for a legacy key with a known
// day name and an hour on the grid. ok is false for canonical, foreign,
// unknown or off-grid keys.
func MigrateLegacyKey(key string) (string, bool) {
	legacy, ok := ParseLegacyKey(key)
	if !ok {
		return "", false
	}
	day := ResolveDayIndex(legacy.DayName)
	if day < 0 {
		return "", false
	}
	hour, err := strconv.Atoi(legacy.Hour)
	if err != nil {
		return "", false
	}
	k := models.SlotKey{Day: day, Hour: hour}
	switch legacy.Half {
	case "h1":
		k.Half = models.HalfFirst
	case "h2":
		k.Half = models.HalfLast
	}
	// Hours off the grid stay as they are, like unknown day names.
	if hour < models.FirstHour || hour > models.LastHour {
		return "", false
	}
	return k.String(), true
}

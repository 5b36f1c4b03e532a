package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gkmslots/models"
)

func TestFormatFullKey_RoundTrip(t *testing.T) {
	for day := 0; day < models.DayCount; day++ {
		for hour := models.FirstHour; hour <= models.LastHour; hour++ {
			key := FormatFullKey(day, hour)
			parsed, err := ParseSlotKey(key)
			require.NoError(t, err, key)
			assert.Equal(t, models.SlotKey{Day: day, Hour: hour}, parsed)
			assert.Equal(t, key, FormatKey(parsed))
		}
	}
}

func TestFormatHalfKey_RoundTrip(t *testing.T) {
	key := FormatHalfKey(3, 14, models.HalfLast)
	assert.Equal(t, "d3-14-h2", key)

	parsed, err := ParseSlotKey(key)
	require.NoError(t, err)
	assert.Equal(t, models.SlotKey{Day: 3, Hour: 14, Half: 2}, parsed)
	assert.True(t, parsed.IsHalf())
	assert.Equal(t, models.SlotKey{Day: 3, Hour: 14}, parsed.Parent())
}

func TestParseSlotKey_Invalid(t *testing.T) {
	for _, key := range []string{
		"", "d5-9", "d0-8", "d0-17", "d0-9-h3", "d0-09", "Monday-9", "d0-9-h", "x0-9",
	} {
		_, err := ParseSlotKey(key)
		assert.ErrorIs(t, err, ErrInvalidSlotKey, key)
	}
}

func TestAllSlotKeys(t *testing.T) {
	keys := AllSlotKeys()
	assert.Len(t, keys, models.TotalSlots)
	assert.Equal(t, "d0-9", keys[0])
	assert.Equal(t, "d4-16", keys[len(keys)-1])
}

func TestResolveDayIndex(t *testing.T) {
	assert.Equal(t, 0, ResolveDayIndex("Monday"))
	assert.Equal(t, 4, ResolveDayIndex("Friday"))
	assert.Equal(t, 0, ResolveDayIndex("Pazartesi"))
	assert.Equal(t, 2, ResolveDayIndex("Çarşamba"))
	assert.Equal(t, -1, ResolveDayIndex("xyz"))
	assert.Equal(t, -1, ResolveDayIndex("monday"))
}

func TestParseLegacyKey(t *testing.T) {
	legacy, ok := ParseLegacyKey("Monday-9")
	require.True(t, ok)
	assert.Equal(t, models.LegacyKey{DayName: "Monday", Hour: "9"}, legacy)

	legacy, ok = ParseLegacyKey("Pazartesi-9-h1")
	require.True(t, ok)
	assert.Equal(t, models.LegacyKey{DayName: "Pazartesi", Hour: "9", Half: "h1"}, legacy)

	_, ok = ParseLegacyKey("d0-9")
	assert.False(t, ok)
	_, ok = ParseLegacyKey("Monday")
	assert.False(t, ok)
	_, ok = ParseLegacyKey("Monday-9-h3")
	assert.False(t, ok)
}

func TestMigrateLegacyKey(t *testing.T) {
	cases := map[string]string{
		"Monday-9":       "d0-9",
		"Friday-16-h2":   "d4-16-h2",
		"Pazartesi-9-h1": "d0-9-h1",
		"Cuma-12":        "d4-12",
	}
	for legacy, want := range cases {
		got, ok := MigrateLegacyKey(legacy)
		require.True(t, ok, legacy)
		assert.Equal(t, want, got, legacy)
	}

	for _, key := range []string{"d0-9", "Sunday-9", "Sabado-10", "random", "Monday-99", "Salı-8", "Cuma-17-h1"} {
		_, ok := MigrateLegacyKey(key)
		assert.False(t, ok, key)
	}
}

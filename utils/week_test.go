package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestWeekID(t *testing.T) {
	cases := []struct {
		at   time.Time
		want string
	}{
		{date(2026, time.January, 1, 0), "2026-W1"},   // Thursday
		{date(2026, time.January, 3, 23), "2026-W1"},  // Saturday
		{date(2026, time.January, 4, 0), "2026-W2"},   // Sunday starts a new week
		{date(2026, time.October, 10, 12), "2026-W41"}, // Saturday
		{date(2026, time.October, 11, 0), "2026-W42"},  // Sunday
		{date(2026, time.October, 16, 9), "2026-W42"},  // Friday
		{date(2026, time.December, 31, 18), "2026-W53"},
		{date(2027, time.January, 1, 0), "2027-W1"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekID(tc.at), tc.at.String())
	}
}

func TestCurrentWeekID_SameWeek(t *testing.T) {
	monday := ClockFunc(func() time.Time { return date(2026, time.October, 12, 9) })
	friday := ClockFunc(func() time.Time { return date(2026, time.October, 16, 16) })
	assert.Equal(t, CurrentWeekID(monday), CurrentWeekID(friday))
}

func TestCurrentWeekID_CrossesBoundary(t *testing.T) {
	now := date(2026, time.October, 17, 23)
	clock := ClockFunc(func() time.Time { return now })
	before := CurrentWeekID(clock)

	now = now.Add(2 * time.Hour)
	assert.NotEqual(t, before, CurrentWeekID(clock))
}

func TestNewLocationClock(t *testing.T) {
	clock := NewLocationClock(time.UTC)
	assert.Equal(t, time.UTC, clock.Now().Location())
}

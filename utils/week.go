package utils

import (
	"fmt"
	"time"
)

// Clock supplies wall-clock time to week-scoped components.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// NewLocationClock returns a system clock reporting time in loc.
func NewLocationClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time { return time.Now().In(loc) })
}

// WeekID returns the partition key of the week containing t, "<year>-W<n>".
//
// The week number is ceil((daysSinceJan1 + weekday(Jan1) + 1) / 7) with
// Sunday as weekday 0, so weeks roll over on Sunday and the first and last
// weeks of a year may be partial. Stored data is keyed by this exact value,
// so the arithmetic must not change.
func WeekID(t time.Time) string {
	startOfYear := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := int(t.Sub(startOfYear) / (24 * time.Hour))
	week := (days + int(startOfYear.Weekday()) + 1 + 6) / 7
	return fmt.Sprintf("%d-W%d", t.Year(), week)
}

// CurrentWeekID is WeekID at clock.Now().
func CurrentWeekID(clock Clock) string {
	return WeekID(clock.Now())
}

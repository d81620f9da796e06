package utils

import "time"

// WeekWindow is the canonical Monday-through-Sunday competition week. Every
// consumer of weekly boundaries (league resolution, leaderboards, close-out)
// goes through WeekOf so they always agree.
type WeekWindow struct {
	Start time.Time // Monday 00:00:00 UTC
	End   time.Time // Sunday 23:59:59.999999999 UTC
}

// WeekOf returns the weekly window containing t. Weeks start on Monday
// regardless of locale; boundaries are computed in UTC.
func WeekOf(t time.Time) WeekWindow {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday belongs to the week that started six days back
		weekday = 7
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return WeekWindow{Start: start, End: end}
}

// Contains reports whether t falls inside the window.
func (w WeekWindow) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && !t.After(w.End)
}

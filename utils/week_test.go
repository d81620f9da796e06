package utils

import (
	"testing"
	"time"
)

func TestWeekOf(t *testing.T) {
	wantStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	wantEnd := time.Date(2026, 3, 8, 23, 59, 59, 999999999, time.UTC)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday midnight", wantStart},
		{"monday morning", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{"midweek", time.Date(2026, 3, 5, 17, 30, 0, 0, time.UTC)},
		{"sunday belongs to same week", time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)},
		{"last nanosecond of sunday", wantEnd},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := WeekOf(tc.in)
			if !w.Start.Equal(wantStart) {
				t.Fatalf("start = %v, want %v", w.Start, wantStart)
			}
			if !w.End.Equal(wantEnd) {
				t.Fatalf("end = %v, want %v", w.End, wantEnd)
			}
		})
	}
}

func TestWeekOfNextMondayRollsOver(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	w := WeekOf(monday)
	if !w.Start.Equal(monday) {
		t.Fatalf("start = %v, want %v", w.Start, monday)
	}
}

func TestWeekOfAlwaysStartsOnMonday(t *testing.T) {
	// Walk a full year of days; every window must start on a Monday at
	// midnight and span exactly seven days.
	day := time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		w := WeekOf(day)
		if w.Start.Weekday() != time.Monday {
			t.Fatalf("%v: start %v is a %v", day, w.Start, w.Start.Weekday())
		}
		if h, m, s := w.Start.Clock(); h != 0 || m != 0 || s != 0 {
			t.Fatalf("%v: start not at midnight: %v", day, w.Start)
		}
		if span := w.End.Sub(w.Start) + time.Nanosecond; span != 7*24*time.Hour {
			t.Fatalf("%v: span = %v", day, span)
		}
		if !w.Contains(day) {
			t.Fatalf("%v: window %v..%v does not contain the input", day, w.Start, w.End)
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestWeekOfUsesUTC(t *testing.T) {
	// Sunday 23:00 in UTC+3 is Sunday 20:00 UTC — still the old week.
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2026, 3, 8, 23, 0, 0, 0, loc)
	w := WeekOf(in)
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !w.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", w.Start, want)
	}
}

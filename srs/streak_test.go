package srs

import (
	"testing"
	"time"
)

func TestTouch(t *testing.T) {
	today := time.Date(2026, 3, 4, 14, 15, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	twoDaysAgo := today.AddDate(0, 0, -2)
	lastWeek := today.AddDate(0, 0, -7)

	tests := []struct {
		name        string
		lastActive  *time.Time
		current     int
		longest     int
		wantStreak  int
		wantLongest int
	}{
		{"first ever activity", nil, 0, 0, 1, 1},
		{"same day is a no-op", &today, 5, 9, 5, 9},
		{"consecutive day extends", &yesterday, 7, 7, 8, 8},
		{"consecutive day keeps higher longest", &yesterday, 3, 20, 4, 20},
		{"two day gap resets", &twoDaysAgo, 15, 15, 1, 15},
		{"week long gap resets", &lastWeek, 40, 40, 1, 40},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			streak, longest := Touch(tc.lastActive, tc.current, tc.longest, today)
			if streak != tc.wantStreak || longest != tc.wantLongest {
				t.Fatalf("Touch = (%d, %d), want (%d, %d)", streak, longest, tc.wantStreak, tc.wantLongest)
			}
		})
	}
}

func TestTouchTwiceSameDayIsIdempotent(t *testing.T) {
	today := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	streak, longest := Touch(&yesterday, 7, 7, today)
	if streak != 8 || longest != 8 {
		t.Fatalf("first touch = (%d, %d), want (8, 8)", streak, longest)
	}

	// Second touch later the same day must change nothing, even with a
	// different wall-clock time.
	later := time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC)
	streak2, longest2 := Touch(&today, streak, longest, later)
	if streak2 != streak || longest2 != longest {
		t.Fatalf("second touch = (%d, %d), want (%d, %d)", streak2, longest2, streak, longest)
	}
}

func TestTouchNormalizesToMidnight(t *testing.T) {
	// 23:50 yesterday followed by 00:10 today is a one-day gap even though
	// only twenty minutes elapsed.
	lastActive := time.Date(2026, 3, 3, 23, 50, 0, 0, time.UTC)
	today := time.Date(2026, 3, 4, 0, 10, 0, 0, time.UTC)

	streak, _ := Touch(&lastActive, 2, 5, today)
	if streak != 3 {
		t.Fatalf("streak = %d, want 3", streak)
	}
}

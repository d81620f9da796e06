package srs

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func TestScheduleRejectsOutOfRangeRatings(t *testing.T) {
	for _, rating := range []int{-1, 0, 6, 100} {
		_, _, err := Schedule(rating, NewState(), testNow)
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestScheduleFailedRecallResets(t *testing.T) {
	priors := []State{
		NewState(),
		{EaseFactor: 2.5, Interval: 6, Repetitions: 2},
		{EaseFactor: 1.3, Interval: 42, Repetitions: 7},
		{EaseFactor: 3.1, Interval: 365, Repetitions: 12},
	}
	for _, prior := range priors {
		for rating := 1; rating <= 2; rating++ {
			next, due, err := Schedule(rating, prior, testNow)
			if err != nil {
				t.Fatalf("rating %d: %v", rating, err)
			}
			if next.Repetitions != 0 {
				t.Fatalf("rating %d prior %+v: repetitions = %d, want 0", rating, prior, next.Repetitions)
			}
			if next.Interval != 1 {
				t.Fatalf("rating %d prior %+v: interval = %d, want 1", rating, prior, next.Interval)
			}
			if next.EaseFactor != prior.EaseFactor {
				t.Fatalf("rating %d prior %+v: ease factor changed to %v", rating, prior, next.EaseFactor)
			}
			if want := testNow.AddDate(0, 0, 1); !due.Equal(want) {
				t.Fatalf("rating %d: due = %v, want %v", rating, due, want)
			}
		}
	}
}

func TestScheduleEaseFactorNeverBelowFloor(t *testing.T) {
	priors := []State{
		{EaseFactor: 1.3, Interval: 1, Repetitions: 1},
		{EaseFactor: 1.35, Interval: 6, Repetitions: 2},
		{EaseFactor: 2.5, Interval: 0, Repetitions: 0},
		{EaseFactor: 3.0, Interval: 100, Repetitions: 9},
	}
	for _, prior := range priors {
		for rating := MinRating; rating <= MaxRating; rating++ {
			next, _, err := Schedule(rating, prior, testNow)
			if err != nil {
				t.Fatalf("rating %d: %v", rating, err)
			}
			if next.EaseFactor < MinEaseFactor {
				t.Fatalf("rating %d prior %+v: ease factor %v below floor", rating, prior, next.EaseFactor)
			}
		}
	}
}

func TestScheduleSuccessfulRecallQualityDelta(t *testing.T) {
	// Quality delta: 0.1 - (5-q)*(0.08 + (5-q)*0.02)
	tests := []struct {
		rating    int
		wantDelta float64
	}{
		{5, 0.1},
		{4, 0}, // 0.1 - 1*(0.08+0.02)
		{3, 0.1 - 2*(0.08+2*0.02)},
	}
	prior := State{EaseFactor: 2.5, Interval: 6, Repetitions: 2}
	for _, tc := range tests {
		next, _, err := Schedule(tc.rating, prior, testNow)
		if err != nil {
			t.Fatalf("rating %d: %v", tc.rating, err)
		}
		if got := next.EaseFactor - prior.EaseFactor; math.Abs(got-tc.wantDelta) > 1e-9 {
			t.Fatalf("rating %d: ease delta = %v, want %v", tc.rating, got, tc.wantDelta)
		}
	}
}

func TestScheduleFreshWordFirstSuccess(t *testing.T) {
	next, due, err := Schedule(5, NewState(), testNow)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if next.Repetitions != 1 {
		t.Fatalf("repetitions = %d, want 1", next.Repetitions)
	}
	if next.Interval != 1 {
		t.Fatalf("interval = %d, want 1", next.Interval)
	}
	if want := testNow.AddDate(0, 0, 1); !due.Equal(want) {
		t.Fatalf("due = %v, want %v", due, want)
	}
}

func TestScheduleThreeConsecutiveSuccesses(t *testing.T) {
	state := NewState()
	var intervals []int
	for i := 0; i < 3; i++ {
		prior := state
		next, _, err := Schedule(5, prior, testNow)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		intervals = append(intervals, next.Interval)
		if i == 2 {
			want := int(math.Round(float64(prior.Interval) * prior.EaseFactor))
			if next.Interval != want {
				t.Fatalf("third interval = %d, want round(%d*%v) = %d", next.Interval, prior.Interval, prior.EaseFactor, want)
			}
		}
		state = next
	}
	if intervals[0] != 1 || intervals[1] != 6 {
		t.Fatalf("intervals = %v, want [1 6 ...]", intervals)
	}
}

package srs

import (
	"errors"
	"math"
	"time"
)

// Rating bounds for a recall attempt. The scale follows SM-2 quality
// grades: 1 = complete blackout, 5 = perfect recall.
const (
	MinRating = 1
	MaxRating = 5

	// Ratings at or above this count as a successful recall.
	PassThreshold = 3

	// The ease factor never drops below this floor.
	MinEaseFactor = 1.3

	// DefaultEaseFactor seeds a never-reviewed word.
	DefaultEaseFactor = 2.5
)

// ErrInvalidRating is returned for ratings outside [MinRating, MaxRating].
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// State is the SM-2 scheduling state carried per (learner, word) pair.
type State struct {
	EaseFactor  float64
	Interval    int // days until the next review
	Repetitions int // consecutive successful recalls
}

// NewState returns the state assigned to a word on its first review.
func NewState() State {
	return State{EaseFactor: DefaultEaseFactor}
}

// Schedule applies one SM-2 review step to the prior state and returns the
// updated state plus the next review date (now + interval calendar days).
//
// A successful recall (rating >= 3) grows the interval: 1 day after the
// first success, 6 after the second, then interval * ease factor, and nudges
// the ease factor by the standard SM-2 quality delta. A failed recall resets
// repetitions and schedules the word for tomorrow without touching the ease
// factor. The ease factor is clamped to MinEaseFactor either way.
func Schedule(rating int, prior State, now time.Time) (State, time.Time, error) {
	if rating < MinRating || rating > MaxRating {
		return State{}, time.Time{}, ErrInvalidRating
	}

	next := prior
	if rating >= PassThreshold {
		next.Repetitions = prior.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.Interval = 1
		case 2:
			next.Interval = 6
		default:
			next.Interval = int(math.Round(float64(prior.Interval) * prior.EaseFactor))
		}
		q := float64(rating)
		next.EaseFactor = prior.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	} else {
		next.Repetitions = 0
		next.Interval = 1
	}

	if next.EaseFactor < MinEaseFactor {
		next.EaseFactor = MinEaseFactor
	}
	if next.Interval < 1 {
		next.Interval = 1
	}

	return next, now.AddDate(0, 0, next.Interval), nil
}

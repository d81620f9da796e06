package srs

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		repetitions int
		easeFactor  float64
		current     Level
		want        Level
	}{
		{"fresh word stays new", 0, 2.5, LevelNew, LevelNew},
		{"empty label defaults to new", 0, 2.5, "", LevelNew},
		{"first success is learning", 1, 2.5, LevelNew, LevelLearning},
		{"two successes still learning", 2, 2.5, LevelLearning, LevelLearning},
		{"three successes familiar", 3, 2.5, LevelLearning, LevelFamiliar},
		{"five reps with high ease mastered", 5, 2.5, LevelFamiliar, LevelMastered},
		{"five reps with low ease only familiar", 5, 2.4, LevelFamiliar, LevelFamiliar},
		{"four reps never mastered", 4, 3.0, LevelFamiliar, LevelFamiliar},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.repetitions, tc.easeFactor, tc.current); got != tc.want {
				t.Fatalf("Classify(%d, %v, %q) = %q, want %q", tc.repetitions, tc.easeFactor, tc.current, got, tc.want)
			}
		})
	}
}

// A failed review resets repetitions to zero but must not strip an earned
// label. This pins the intended no-downgrade behavior.
func TestClassifyKeepsLabelAfterReset(t *testing.T) {
	for _, current := range []Level{LevelLearning, LevelFamiliar, LevelMastered} {
		if got := Classify(0, 1.3, current); got != current {
			t.Fatalf("Classify(0, 1.3, %q) = %q, want label kept", current, got)
		}
	}
}

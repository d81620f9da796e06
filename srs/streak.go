package srs

import "time"

// Touch advances a learner's daily streak for activity happening today and
// returns the new current and longest streak values.
//
// Dates are compared at UTC midnight. A second call on the same calendar day
// leaves the streak unchanged, so repeated or concurrent submissions cannot
// double-increment. A gap of exactly one day extends the streak; anything
// longer resets it to 1.
func Touch(lastActive *time.Time, current, longest int, today time.Time) (int, int) {
	newStreak := 1
	if lastActive != nil {
		switch daysBetween(*lastActive, today) {
		case 0:
			newStreak = current
		case 1:
			newStreak = current + 1
		}
	}
	if newStreak > longest {
		longest = newStreak
	}
	return newStreak, longest
}

func daysBetween(a, b time.Time) int {
	return int(midnight(b).Sub(midnight(a)).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package srs

// Level is the coarse mastery classification of a word for a learner.
type Level string

const (
	LevelNew      Level = "NEW"
	LevelLearning Level = "LEARNING"
	LevelFamiliar Level = "FAMILIAR"
	LevelMastered Level = "MASTERED"
)

const (
	masteredMinRepetitions = 5
	masteredMinEase        = 2.5
	familiarMinRepetitions = 3
)

// Classify derives the mastery label from the repetition count and ease
// factor. When repetitions reset to zero after a failed recall the current
// label is kept rather than demoted.
func Classify(repetitions int, easeFactor float64, current Level) Level {
	switch {
	case repetitions >= masteredMinRepetitions && easeFactor >= masteredMinEase:
		return LevelMastered
	case repetitions >= familiarMinRepetitions:
		return LevelFamiliar
	case repetitions >= 1:
		return LevelLearning
	case current == "":
		return LevelNew
	default:
		return current
	}
}

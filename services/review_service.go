package services

import (
	"errors"
	"log"
	"time"

	"vocab-review-system/models"
	"vocab-review-system/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewService struct {
	DB     *gorm.DB
	Badges *BadgeService
}

func NewReviewService(db *gorm.DB, badges *BadgeService) *ReviewService {
	return &ReviewService{DB: db, Badges: badges}
}

// SubmitReviewInput is one review submission from a learning session.
type SubmitReviewInput struct {
	ExternalUserID string
	WordID         string
	Rating         int
	ResponseTimeMs int
	SessionID      string
	LearningMethod string
}

// SubmitReviewOutcome is what the handler returns to the client.
type SubmitReviewOutcome struct {
	State          *models.ReviewState
	NextReviewDate time.Time
	CurrentStreak  int
	LongestStreak  int
	NewlyMastered  bool
}

// SubmitReview runs the full review pipeline in one transaction: lock (or
// create) the ReviewState, advance SM-2, reclassify mastery, append the
// immutable ReviewEvent, and touch the daily streak. Two concurrent
// submissions for the same (user, word) serialize on the row lock; a lost
// first-creation race is retried once.
func (s *ReviewService) SubmitReview(in SubmitReviewInput) (*SubmitReviewOutcome, error) {
	if in.Rating < srs.MinRating || in.Rating > srs.MaxRating {
		return nil, &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if _, err := uuid.Parse(in.WordID); err != nil {
		return nil, &ValidationError{Field: "word_id", Reason: "must be a uuid"}
	}
	var word models.Word
	if err := s.DB.Select("id").First(&word, "id = ?", in.WordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "word_id", Reason: "unknown word"}
		}
		return nil, classifyStorageErr(err, "word")
	}

	out := &SubmitReviewOutcome{}
	run := func() error { return s.submitOnce(in, out) }

	err := run()
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		// Lost a first-review race; the row exists now, so a retry locks it.
		err = run()
	}
	if err != nil {
		return nil, err
	}

	// Badge triggers ride on the updated counters (fire-and-forget).
	_ = s.Badges.AutoAwardBadges(in.ExternalUserID)

	log.Printf("📚 Review: user=%s word=%s rating=%d → reps=%d interval=%dd ef=%.2f level=%s",
		in.ExternalUserID, in.WordID, in.Rating,
		out.State.Repetitions, out.State.IntervalDays, out.State.EaseFactor, out.State.MasteryLevel)

	return out, nil
}

func (s *ReviewService) submitOnce(in SubmitReviewInput, out *SubmitReviewOutcome) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		state, err := lockOrCreateState(tx, in.ExternalUserID, in.WordID, now)
		if err != nil {
			return err
		}

		prior := srs.State{
			EaseFactor:  state.EaseFactor,
			Interval:    state.IntervalDays,
			Repetitions: state.Repetitions,
		}
		next, due, err := srs.Schedule(in.Rating, prior, now)
		if err != nil {
			return &ValidationError{Field: "rating", Reason: err.Error()}
		}

		state.EaseFactor = next.EaseFactor
		state.IntervalDays = next.Interval
		state.Repetitions = next.Repetitions
		state.NextReviewDate = due
		state.LastReviewDate = &now
		state.TotalReviews++
		if in.Rating >= srs.PassThreshold {
			state.CorrectCount++
		} else {
			state.IncorrectCount++
		}

		wasMastered := state.MasteryLevel == srs.LevelMastered
		state.MasteryLevel = srs.Classify(next.Repetitions, next.EaseFactor, state.MasteryLevel)
		newlyMastered := !wasMastered && state.MasteryLevel == srs.LevelMastered

		if err := tx.Save(state).Error; err != nil {
			return classifyStorageErr(err, "review_state")
		}

		event := models.ReviewEvent{
			ExternalUserID: in.ExternalUserID,
			WordID:         in.WordID,
			SessionID:      in.SessionID,
			Rating:         in.Rating,
			ResponseTimeMs: in.ResponseTimeMs,
			LearningMethod: in.LearningMethod,
		}
		if err := tx.Create(&event).Error; err != nil {
			return classifyStorageErr(err, "review_event")
		}

		streak, longest, err := touchActivity(tx, in.ExternalUserID, now, newlyMastered)
		if err != nil {
			return err
		}

		out.State = state
		out.NextReviewDate = due
		out.CurrentStreak = streak
		out.LongestStreak = longest
		out.NewlyMastered = newlyMastered
		return nil
	})
}

// lockOrCreateState fetches the ReviewState row under FOR UPDATE, creating
// it on the first review of this word. The unique (user, word) index makes
// a concurrent first creation fail with a duplicate-key error, which aborts
// the enclosing transaction and is retried by the caller.
func lockOrCreateState(tx *gorm.DB, userID, wordID string, now time.Time) (*models.ReviewState, error) {
	var state models.ReviewState
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_user_id = ? AND word_id = ?", userID, wordID).
		First(&state).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyStorageErr(err, "review_state")
	}

	fresh := srs.NewState()
	state = models.ReviewState{
		ExternalUserID: userID,
		WordID:         wordID,
		EaseFactor:     fresh.EaseFactor,
		IntervalDays:   fresh.Interval,
		Repetitions:    fresh.Repetitions,
		NextReviewDate: now,
		MasteryLevel:   srs.LevelNew,
	}
	if err := tx.Create(&state).Error; err != nil {
		return nil, classifyStorageErr(err, "review_state")
	}
	return &state, nil
}

// touchActivity locks the learner's activity row and applies the idempotent
// daily streak touch; the dayDiff==0 branch inside srs.Touch is what makes
// same-day duplicates safe, the row lock only serializes the read.
func touchActivity(tx *gorm.DB, userID string, now time.Time, newlyMastered bool) (int, int, error) {
	var act models.LearnerActivity
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_user_id = ?", userID).
		First(&act).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		act = models.LearnerActivity{ExternalUserID: userID}
		if err := tx.Create(&act).Error; err != nil {
			return 0, 0, classifyStorageErr(err, "learner_activity")
		}
	} else if err != nil {
		return 0, 0, classifyStorageErr(err, "learner_activity")
	}

	streak, longest := srs.Touch(act.LastActiveDate, act.CurrentStreak, act.LongestStreak, now)
	act.CurrentStreak = streak
	act.LongestStreak = longest
	act.LastActiveDate = &now
	act.TotalReviews++
	if newlyMastered {
		act.TotalWordsLearned++
	}
	if err := tx.Save(&act).Error; err != nil {
		return 0, 0, classifyStorageErr(err, "learner_activity")
	}
	return streak, longest, nil
}

// DueReviews lists words whose next review date has passed, most overdue
// first, with word payloads attached.
func (s *ReviewService) DueReviews(userID string, now time.Time, limit int) ([]models.ReviewState, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var due []models.ReviewState
	err := s.DB.Where("external_user_id = ? AND next_review_date <= ?", userID, now).
		Order("next_review_date ASC").
		Limit(limit).
		Preload("Word").
		Find(&due).Error
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	return due, nil
}

// Activity returns the learner's streak row, or a zero-valued one if the
// learner has never reviewed.
func (s *ReviewService) Activity(userID string) (*models.LearnerActivity, error) {
	var act models.LearnerActivity
	err := s.DB.Where("external_user_id = ?", userID).First(&act).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.LearnerActivity{ExternalUserID: userID}, nil
	}
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	return &act, nil
}

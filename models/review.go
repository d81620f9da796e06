package models

import (
	"time"

	"vocab-review-system/srs"
)

// ReviewState carries the SM-2 scheduling state for one (learner, word)
// pair. Created on the first rating, mutated on every review, never deleted.
type ReviewState struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"not null;index:idx_review_user_word,unique" json:"external_user_id"`
	WordID         string `gorm:"not null;index:idx_review_user_word,unique" json:"word_id"`

	EaseFactor   float64 `gorm:"not null;default:2.5" json:"ease_factor"`
	IntervalDays int     `gorm:"not null;default:0" json:"interval_days"`
	Repetitions  int     `gorm:"not null;default:0" json:"repetitions"`

	NextReviewDate time.Time  `gorm:"not null;index" json:"next_review_date"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`

	MasteryLevel srs.Level `gorm:"type:varchar(16);not null;default:'NEW'" json:"mastery_level"`

	CorrectCount   int `gorm:"not null;default:0" json:"correct_count"`
	IncorrectCount int `gorm:"not null;default:0" json:"incorrect_count"`
	TotalReviews   int `gorm:"not null;default:0" json:"total_reviews"`

	Timestamps

	// Word is preloaded for due-review listings.
	Word *Word `gorm:"foreignKey:WordID" json:"word,omitempty"`
}

// ReviewEvent is the append-only record of one submitted review. Rows are
// written once and never updated.
type ReviewEvent struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string    `gorm:"index;not null" json:"external_user_id"`
	WordID         string    `gorm:"index;not null" json:"word_id"`
	SessionID      string    `json:"session_id,omitempty"`
	Rating         int       `gorm:"not null" json:"rating"`
	ResponseTimeMs int       `gorm:"default:0" json:"response_time_ms"`
	LearningMethod string    `gorm:"type:varchar(32)" json:"learning_method,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

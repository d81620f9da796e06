package models

import (
	"time"

	"gorm.io/gorm"
)

// LearnerActivity tracks per-learner engagement (denormalized for performance)
type LearnerActivity struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	CurrentStreak  int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak  int        `gorm:"not null;default:0" json:"longest_streak"`

	// TotalWordsLearned counts review states that reached MASTERED.
	TotalWordsLearned int   `gorm:"not null;default:0" json:"total_words_learned"`
	TotalReviews      int64 `gorm:"not null;default:0" json:"total_reviews"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

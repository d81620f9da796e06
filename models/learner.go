package models

import (
	"time"

	"gorm.io/gorm"
)

// LearnerProfile is a local snapshot of learner data needed for leaderboard
// display. Owned solely by this service and populated by the profile sync
// worker; the profile service remains the source of truth.
type LearnerProfile struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"` // the profile service's UUID
	Username       string  `gorm:"index;not null" json:"username"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	NativeLanguage *string `json:"native_language,omitempty"`
	TargetLanguage *string `json:"target_language,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

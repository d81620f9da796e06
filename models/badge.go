package models

import (
	"time"
)

// BadgeType: static config (loaded from DB or JSON)
type BadgeType struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string `gorm:"uniqueIndex;not null"` // e.g., "STREAK_7", "FIRST_MASTERY"
	Name        string `gorm:"not null"`             // "Week One Warrior", "First Mastery"
	Description string
	IconURL     string           `gorm:"type:text"`
	Rarity      string           `gorm:"type:varchar(16);default:'common'"` // common, rare, epic, legendary
	Threshold   map[string]int64 `gorm:"serializer:json;type:jsonb"`        // e.g., {"current_streak": 7}
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

// UserBadge: awarded instance (many-to-many)
type UserBadge struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ExternalUserID string    `gorm:"index;not null"`
	BadgeTypeID    string    `gorm:"index;not null"`
	AwardedAt      time.Time `gorm:"autoCreateTime"`
	Metadata       string    `gorm:"type:jsonb"` // e.g., {"streak": 30}
}

// Predefined badge triggers, seeded at startup and checked after every
// review submission.
var BadgeTriggers = []BadgeType{
	{
		Code:        "FIRST_REVIEW",
		Name:        "First Step",
		Description: "Completed your first review",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_reviews": 1},
	},
	{
		Code:        "STREAK_7",
		Name:        "Week One Warrior",
		Description: "Practiced seven days in a row",
		Rarity:      "common",
		Threshold:   map[string]int64{"current_streak": 7},
	},
	{
		Code:        "STREAK_30",
		Name:        "Habit Formed",
		Description: "Practiced thirty days in a row",
		Rarity:      "rare",
		Threshold:   map[string]int64{"current_streak": 30},
	},
	{
		Code:        "FIRST_MASTERY",
		Name:        "First Mastery",
		Description: "Mastered your first word",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_words_learned": 1},
	},
	{
		Code:        "LEXICON_100",
		Name:        "Century Lexicon",
		Description: "Mastered one hundred words",
		Rarity:      "epic",
		Threshold:   map[string]int64{"total_words_learned": 100},
	},
	{
		Code:        "REVIEWER_1000",
		Name:        "Thousand Cards",
		Description: "Completed one thousand reviews",
		Rarity:      "epic",
		Threshold:   map[string]int64{"total_reviews": 1000},
	},
}

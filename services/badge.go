package services

import (
	"log"

	"vocab-review-system/models"

	"gorm.io/gorm"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// SeedBadgeTypes upserts the predefined badge catalogue so trigger checks
// can resolve badge type ids. Idempotent; runs at startup.
func (s *BadgeService) SeedBadgeTypes() error {
	for _, trigger := range models.BadgeTriggers {
		var existing models.BadgeType
		err := s.DB.Where("code = ?", trigger.Code).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.DB.Create(&trigger).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// AutoAwardBadges checks all badge triggers for a learner after an activity
// update and awards any newly earned ones.
func (s *BadgeService) AutoAwardBadges(externalUserID string) error {
	var act models.LearnerActivity
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&act).Error; err != nil {
		return err
	}

	var types []models.BadgeType
	if err := s.DB.Find(&types).Error; err != nil {
		return err
	}

	for _, badge := range types {
		if !s.meetsThreshold(&act, badge.Threshold) {
			continue
		}
		var count int64
		if err := s.DB.Model(&models.UserBadge{}).
			Where("external_user_id = ? AND badge_type_id = ?", externalUserID, badge.ID).
			Count(&count).Error; err != nil {
			// A failed lookup must not read as "not yet awarded".
			return err
		}
		if count > 0 {
			continue
		}
		userBadge := models.UserBadge{
			ExternalUserID: externalUserID,
			BadgeTypeID:    badge.ID,
		}
		if err := s.DB.Create(&userBadge).Error; err != nil {
			return err
		}
		log.Printf("🎖️ Badge awarded: %s → %s", badge.Name, externalUserID)
	}
	return nil
}

func (s *BadgeService) meetsThreshold(act *models.LearnerActivity, req map[string]int64) bool {
	if len(req) == 0 {
		return false
	}
	for key, required := range req {
		switch key {
		case "total_reviews":
			if act.TotalReviews < required {
				return false
			}
		case "current_streak":
			if int64(act.CurrentStreak) < required {
				return false
			}
		case "longest_streak":
			if int64(act.LongestStreak) < required {
				return false
			}
		case "total_words_learned":
			if int64(act.TotalWordsLearned) < required {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// UserBadges lists a learner's earned badges with their catalogue entries.
func (s *BadgeService) UserBadges(externalUserID string) ([]models.UserBadge, map[string]models.BadgeType, error) {
	var earned []models.UserBadge
	if err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("awarded_at ASC").
		Find(&earned).Error; err != nil {
		return nil, nil, &TransientError{Err: err}
	}

	typeByID := map[string]models.BadgeType{}
	if len(earned) > 0 {
		ids := make([]string, len(earned))
		for i, b := range earned {
			ids[i] = b.BadgeTypeID
		}
		var types []models.BadgeType
		if err := s.DB.Where("id IN ?", ids).Find(&types).Error; err != nil {
			return nil, nil, &TransientError{Err: err}
		}
		for _, bt := range types {
			typeByID[bt.ID] = bt
		}
	}
	return earned, typeByID, nil
}

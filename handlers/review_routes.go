// handlers/review_routes.go
package handlers

import (
	"strconv"
	"time"

	"vocab-review-system/middleware"
	"vocab-review-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App, reviewService *services.ReviewService, badgeService *services.BadgeService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Submit one review; runs the full scheduling pipeline.
	secured.Post("/reviews", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			WordID         string `json:"word_id"`
			Rating         int    `json:"rating"`
			ResponseTimeMs int    `json:"response_time_ms"`
			SessionID      string `json:"session_id"`
			LearningMethod string `json:"learning_method"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		outcome, err := reviewService.SubmitReview(services.SubmitReviewInput{
			ExternalUserID: userID,
			WordID:         req.WordID,
			Rating:         req.Rating,
			ResponseTimeMs: req.ResponseTimeMs,
			SessionID:      req.SessionID,
			LearningMethod: req.LearningMethod,
		})
		if err != nil {
			return failWith(c, err)
		}

		return c.JSON(fiber.Map{
			"progress": fiber.Map{
				"mastery_level":   outcome.State.MasteryLevel,
				"repetitions":     outcome.State.Repetitions,
				"interval_days":   outcome.State.IntervalDays,
				"ease_factor":     outcome.State.EaseFactor,
				"correct_count":   outcome.State.CorrectCount,
				"incorrect_count": outcome.State.IncorrectCount,
				"total_reviews":   outcome.State.TotalReviews,
				"newly_mastered":  outcome.NewlyMastered,
			},
			"next_review_date": outcome.NextReviewDate,
			"streak": fiber.Map{
				"current": outcome.CurrentStreak,
				"longest": outcome.LongestStreak,
			},
		})
	})

	// Words due for review, most overdue first.
	secured.Get("/reviews/due", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		due, err := reviewService.DueReviews(userID, time.Now().UTC(), limit)
		if err != nil {
			return failWith(c, err)
		}
		return c.JSON(fiber.Map{
			"count": len(due),
			"items": due,
		})
	})

	// Streak and engagement summary.
	secured.Get("/user/activity", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		act, err := reviewService.Activity(userID)
		if err != nil {
			return failWith(c, err)
		}
		return c.JSON(fiber.Map{
			"current_streak":      act.CurrentStreak,
			"longest_streak":      act.LongestStreak,
			"last_active_date":    act.LastActiveDate,
			"total_words_learned": act.TotalWordsLearned,
			"total_reviews":       act.TotalReviews,
		})
	})

	// Earned badges.
	secured.Get("/user/badges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		earned, typeByID, err := badgeService.UserBadges(userID)
		if err != nil {
			return failWith(c, err)
		}

		response := make([]fiber.Map, 0, len(earned))
		for _, ub := range earned {
			bt := typeByID[ub.BadgeTypeID]
			response = append(response, fiber.Map{
				"id":          ub.ID,
				"code":        bt.Code,
				"name":        bt.Name,
				"description": bt.Description,
				"icon_url":    bt.IconURL,
				"rarity":      bt.Rarity,
				"awarded_at":  ub.AwardedAt,
			})
		}
		return c.JSON(response)
	})
}

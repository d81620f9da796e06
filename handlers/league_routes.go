// handlers/league_routes.go
package handlers

import (
	"strconv"
	"time"

	"vocab-review-system/middleware"
	"vocab-review-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeagueRoutes(app *fiber.App, leagueService *services.LeagueService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Current week's league seat; created lazily on first call.
	secured.Get("/league/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		membership, err := leagueService.ResolveMembership(userID, time.Now().UTC())
		if err != nil {
			return failWith(c, err)
		}

		resp := fiber.Map{
			"weekly_xp":  membership.WeeklyXP,
			"week_start": membership.WeekStart,
			"result":     membership.Result,
		}
		if membership.FinalRank != nil {
			resp["final_rank"] = *membership.FinalRank
		}
		if league := membership.League; league != nil {
			resp["tier"] = league.Tier
			resp["tier_name"] = league.Tier.Name()
			resp["tier_code"] = league.Tier.Code()
			resp["week_end"] = league.WeekEnd
			resp["promotion_zone_size"] = league.PromotionZoneSize
			resp["demotion_zone_size"] = league.DemotionZoneSize
		}
		return c.JSON(resp)
	})

	// Award XP to the caller's weekly total.
	secured.Post("/league/xp", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Amount int64  `json:"amount"`
			Reason string `json:"reason"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		total, err := leagueService.AddXP(userID, req.Amount, req.Reason, time.Now().UTC())
		if err != nil {
			return failWith(c, err)
		}
		return c.JSON(fiber.Map{"current_xp": total})
	})

	// Ranked members of the caller's current cohort.
	secured.Get("/league/leaderboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		if limit <= 0 || limit > 100 {
			limit = 50
		}

		membership, err := leagueService.ResolveMembership(userID, time.Now().UTC())
		if err != nil {
			return failWith(c, err)
		}

		entries, err := leagueService.Leaderboard(membership.LeagueID, limit)
		if err != nil {
			return failWith(c, err)
		}

		resp := fiber.Map{"entries": entries}
		if league := membership.League; league != nil {
			resp["tier"] = league.Tier
			resp["tier_name"] = league.Tier.Name()
			resp["week_start"] = league.WeekStart
			resp["week_end"] = league.WeekEnd
		}
		return c.JSON(resp)
	})
}

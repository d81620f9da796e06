package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"vocab-review-system/models"
	"vocab-review-system/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeagueService struct {
	DB *gorm.DB
}

func NewLeagueService(db *gorm.DB) *LeagueService {
	return &LeagueService{DB: db}
}

// ResolveMembership returns the caller's membership for the week containing
// now, creating the league and membership rows on first touch. The starting
// tier comes from the most recent prior membership's result: PROMOTED moves
// one rung up, DEMOTED one down (both saturating), anything else stays;
// learners with no history start at the bottom rung.
func (s *LeagueService) ResolveMembership(userID string, now time.Time) (*models.LeagueMembership, error) {
	week := utils.WeekOf(now)

	var existing models.LeagueMembership
	err := s.DB.Preload("League").
		Where("external_user_id = ? AND week_start = ?", userID, week.Start).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyStorageErr(err, "league_membership")
	}

	var priorRow models.LeagueMembership
	var prior *models.LeagueMembership
	err = s.DB.Preload("League").
		Where("external_user_id = ?", userID).
		Order("week_start DESC").
		First(&priorRow).Error
	switch {
	case err == nil:
		if priorRow.League == nil {
			return nil, &TransientError{Err: fmt.Errorf("membership %s references missing league %s", priorRow.ID, priorRow.LeagueID)}
		}
		prior = &priorRow
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first season, bottom rung
	default:
		return nil, classifyStorageErr(err, "league_membership")
	}
	tier := seedTier(prior)

	league, err := s.getOrCreateLeague(tier, week)
	if err != nil {
		return nil, err
	}

	membership := models.LeagueMembership{
		ExternalUserID: userID,
		LeagueID:       league.ID,
		WeekStart:      week.Start,
		WeeklyXP:       0,
		Result:         models.ResultPending,
	}
	if err := s.DB.Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent first call won the (user, week) race; use its row.
			var won models.LeagueMembership
			if err := s.DB.Preload("League").
				Where("external_user_id = ? AND week_start = ?", userID, week.Start).
				First(&won).Error; err != nil {
				return nil, classifyStorageErr(err, "league_membership")
			}
			return &won, nil
		}
		return nil, classifyStorageErr(err, "league_membership")
	}
	membership.League = league

	log.Printf("🏆 League joined: user=%s %s week=%s", userID, league.Tier.Name(), week.Start.Format("2006-01-02"))
	return &membership, nil
}

// seedTier maps the most recent prior membership to this week's starting
// tier: PROMOTED moves one rung up, DEMOTED one down (both saturating),
// anything else stays. No history starts at the bottom rung.
func seedTier(prior *models.LeagueMembership) models.LeagueTier {
	if prior == nil || prior.League == nil {
		return models.LowestTier
	}
	switch prior.Result {
	case models.ResultPromoted:
		return prior.League.Tier.Next()
	case models.ResultDemoted:
		return prior.League.Tier.Previous()
	default:
		return prior.League.Tier
	}
}

// getOrCreateLeague is an insert-or-ignore on the (tier, week_start) natural
// key followed by a read-back, so concurrent first-time calls converge on a
// single row.
func (s *LeagueService) getOrCreateLeague(tier models.LeagueTier, week utils.WeekWindow) (*models.League, error) {
	league := models.League{
		Tier:              tier,
		WeekStart:         week.Start,
		WeekEnd:           week.End,
		PromotionZoneSize: models.DefaultPromotionZoneSize,
		DemotionZoneSize:  models.DefaultDemotionZoneSize,
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tier"}, {Name: "week_start"}},
		DoNothing: true,
	}).Create(&league).Error; err != nil {
		return nil, classifyStorageErr(err, "league")
	}

	var row models.League
	if err := s.DB.Where("tier = ? AND week_start = ?", tier, week.Start).First(&row).Error; err != nil {
		return nil, classifyStorageErr(err, "league")
	}
	return &row, nil
}

// AddXP atomically adds amount to the caller's current weekly total and
// returns the new total. Amount must be positive; the single-statement
// increment needs no row lock.
func (s *LeagueService) AddXP(userID string, amount int64, reason string, now time.Time) (int64, error) {
	if amount <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	membership, err := s.ResolveMembership(userID, now)
	if err != nil {
		return 0, err
	}

	// RETURNING hands back the total this increment produced; a separate
	// read-back could see a concurrent add's XP on top.
	var updated models.LeagueMembership
	if err := s.DB.Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "weekly_xp"}}}).
		Where("id = ?", membership.ID).
		UpdateColumn("weekly_xp", gorm.Expr("weekly_xp + ?", amount)).Error; err != nil {
		return 0, &TransientError{Err: err}
	}

	log.Printf("⚡ XP: user=%s +%d → %d (reason: %s)", userID, amount, updated.WeeklyXP, reason)
	return updated.WeeklyXP, nil
}

// LeaderboardEntry is one ranked row of a weekly cohort, decorated with the
// mirrored learner profile when available.
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	ExternalUserID string  `json:"external_user_id"`
	Username       string  `json:"username,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	WeeklyXP       int64   `json:"weekly_xp"`
	Zone           string  `json:"zone"` // promotion | safe | demotion
}

// Leaderboard returns the cohort ranked by weekly XP descending, ties broken
// by earliest membership creation, then id for a total order.
func (s *LeagueService) Leaderboard(leagueID string, limit int) ([]LeaderboardEntry, error) {
	var league models.League
	if err := s.DB.First(&league, "id = ?", leagueID).Error; err != nil {
		return nil, classifyStorageErr(err, "league")
	}

	var total int64
	if err := s.DB.Model(&models.LeagueMembership{}).
		Where("league_id = ?", leagueID).
		Count(&total).Error; err != nil {
		return nil, &TransientError{Err: err}
	}

	members, err := rankedMembers(s.DB, leagueID, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ExternalUserID
	}
	profileByID := map[string]models.LearnerProfile{}
	if len(ids) > 0 {
		var profiles []models.LearnerProfile
		if err := s.DB.Where("external_user_id IN ?", ids).Find(&profiles).Error; err != nil {
			return nil, &TransientError{Err: err}
		}
		for _, p := range profiles {
			profileByID[p.ExternalUserID] = p
		}
	}

	entries := make([]LeaderboardEntry, len(members))
	for i, m := range members {
		rank := i + 1
		entry := LeaderboardEntry{
			Rank:           rank,
			ExternalUserID: m.ExternalUserID,
			WeeklyXP:       m.WeeklyXP,
			Zone:           zoneName(rankOutcome(rank, int(total), league.PromotionZoneSize, league.DemotionZoneSize)),
		}
		if p, ok := profileByID[m.ExternalUserID]; ok {
			entry.Username = p.Username
			entry.AvatarURL = p.AvatarURL
		}
		entries[i] = entry
	}
	return entries, nil
}

// rankedMembers pushes the ranking order into SQL so a limited page is the
// true top of the cohort; the ORDER BY mirrors standingsLess.
func rankedMembers(db *gorm.DB, leagueID string, limit int) ([]models.LeagueMembership, error) {
	q := db.Where("league_id = ?", leagueID).
		Order("weekly_xp DESC, created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var members []models.LeagueMembership
	if err := q.Find(&members).Error; err != nil {
		return nil, &TransientError{Err: err}
	}
	return members, nil
}

// standingsLess is the ranking order: weekly XP descending, ties broken by
// earliest membership creation, then id for a total order.
func standingsLess(a, b *models.LeagueMembership) bool {
	if a.WeeklyXP != b.WeeklyXP {
		return a.WeeklyXP > b.WeeklyXP
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func sortStandings(members []models.LeagueMembership) {
	sort.SliceStable(members, func(i, j int) bool {
		return standingsLess(&members[i], &members[j])
	})
}

// rankOutcome classifies a final rank into the promotion, stay or demotion
// band. Promotion wins when a tiny cohort makes the bands overlap.
func rankOutcome(rank, total, promotionZone, demotionZone int) models.MembershipResult {
	if rank <= promotionZone {
		return models.ResultPromoted
	}
	if rank > total-demotionZone {
		return models.ResultDemoted
	}
	return models.ResultStayed
}

func zoneName(r models.MembershipResult) string {
	switch r {
	case models.ResultPromoted:
		return "promotion"
	case models.ResultDemoted:
		return "demotion"
	default:
		return "safe"
	}
}

// CloseOutDueLeagues finalizes every league whose week has ended. Called by
// the gocron sweep; each league is independent so one failure does not block
// the rest.
func (s *LeagueService) CloseOutDueLeagues(now time.Time) error {
	var due []models.League
	if err := s.DB.Where("week_end < ? AND finalized_at IS NULL", now).Find(&due).Error; err != nil {
		return &TransientError{Err: err}
	}
	for i := range due {
		if err := s.CloseOutLeague(&due[i]); err != nil {
			log.Printf("❌ [CLOSEOUT] league %s (%s): %v", due[i].ID, due[i].Tier.Name(), err)
		}
	}
	return nil
}

// CloseOutLeague ranks a finished cohort, records final ranks and
// promotion/demotion results, and stamps the league finalized. Safe to
// re-run after a partial failure: the ordering keys are deterministic and
// only memberships still PENDING are written.
func (s *LeagueService) CloseOutLeague(league *models.League) error {
	var standings []models.LeagueMembership

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var members []models.LeagueMembership
		if err := tx.Where("league_id = ?", league.ID).Find(&members).Error; err != nil {
			return &TransientError{Err: err}
		}
		sortStandings(members)
		total := len(members)

		for i := range members {
			m := &members[i]
			rank := i + 1
			if m.Result != models.ResultPending {
				continue // finalized by an earlier, interrupted run
			}
			result := rankOutcome(rank, total, league.PromotionZoneSize, league.DemotionZoneSize)
			if err := tx.Model(&models.LeagueMembership{}).
				Where("id = ?", m.ID).
				Updates(map[string]interface{}{
					"final_rank": rank,
					"result":     result,
				}).Error; err != nil {
				return classifyStorageErr(err, "league_membership")
			}
			m.FinalRank = &rank
			m.Result = result
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.League{}).
			Where("id = ?", league.ID).
			Update("finalized_at", now).Error; err != nil {
			return classifyStorageErr(err, "league")
		}
		league.FinalizedAt = &now
		standings = members
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("🏁 [CLOSEOUT] %s week=%s finalized: %d members",
		league.Tier.Name(), league.WeekStart.Format("2006-01-02"), len(standings))

	// Archive outside the transaction; the upload is best-effort.
	s.archiveStandings(league, standings)
	return nil
}

// archiveStandings uploads a JSON snapshot of the final standings to object
// storage when R2 is configured.
func (s *LeagueService) archiveStandings(league *models.League, members []models.LeagueMembership) {
	if !utils.R2Enabled() {
		return
	}

	type archivedMember struct {
		ExternalUserID string                  `json:"external_user_id"`
		WeeklyXP       int64                   `json:"weekly_xp"`
		FinalRank      *int                    `json:"final_rank"`
		Result         models.MembershipResult `json:"result"`
	}
	archive := struct {
		Tier      string           `json:"tier"`
		WeekStart time.Time        `json:"week_start"`
		WeekEnd   time.Time        `json:"week_end"`
		Members   []archivedMember `json:"members"`
	}{
		Tier:      league.Tier.Code(),
		WeekStart: league.WeekStart,
		WeekEnd:   league.WeekEnd,
		Members:   make([]archivedMember, len(members)),
	}
	for i, m := range members {
		archive.Members[i] = archivedMember{
			ExternalUserID: m.ExternalUserID,
			WeeklyXP:       m.WeeklyXP,
			FinalRank:      m.FinalRank,
			Result:         m.Result,
		}
	}

	payload, err := json.Marshal(archive)
	if err != nil {
		log.Printf("⚠️ [CLOSEOUT] failed to encode archive for league %s: %v", league.ID, err)
		return
	}

	key := fmt.Sprintf("league-archives/%s/%s.json", league.WeekStart.Format("2006-01-02"), league.Tier.Code())
	url, err := utils.UploadBytesToR2(key, payload, "application/json")
	if err != nil {
		log.Printf("⚠️ [CLOSEOUT] archive upload failed for league %s: %v", league.ID, err)
		return
	}
	log.Printf("🗄️ [CLOSEOUT] standings archived: %s", url)
}

package services

import (
	"testing"
	"time"

	"vocab-review-system/models"
)

func priorMembership(tier models.LeagueTier, result models.MembershipResult) *models.LeagueMembership {
	return &models.LeagueMembership{
		Result: result,
		League: &models.League{Tier: tier},
	}
}

func TestSeedTier(t *testing.T) {
	tests := []struct {
		name  string
		prior *models.LeagueMembership
		want  models.LeagueTier
	}{
		{"no history starts at the bottom", nil, models.LowestTier},
		{"pending prior stays", priorMembership(models.TierGold, models.ResultPending), models.TierGold},
		{"stayed prior stays", priorMembership(models.TierRuby, models.ResultStayed), models.TierRuby},
		{"promoted prior moves up", priorMembership(models.TierSilver, models.ResultPromoted), models.TierGold},
		{"promoted at the top saturates", priorMembership(models.TierDiamond, models.ResultPromoted), models.TierDiamond},
		{"demoted prior moves down", priorMembership(models.TierGold, models.ResultDemoted), models.TierSilver},
		{"demoted at the bottom saturates", priorMembership(models.TierBronze, models.ResultDemoted), models.TierBronze},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := seedTier(tc.prior); got != tc.want {
				t.Fatalf("got %s, want %s", got.Name(), tc.want.Name())
			}
		})
	}
}

func TestSortStandingsTieBreak(t *testing.T) {
	earlier := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	members := []models.LeagueMembership{
		{ID: "m-bronze", ExternalUserID: "u3", WeeklyXP: 30, CreatedAt: earlier},
		{ID: "m-late", ExternalUserID: "u2", WeeklyXP: 50, CreatedAt: later},
		{ID: "m-early", ExternalUserID: "u1", WeeklyXP: 50, CreatedAt: earlier},
	}
	sortStandings(members)

	wantOrder := []string{"u1", "u2", "u3"}
	for i, want := range wantOrder {
		if members[i].ExternalUserID != want {
			t.Fatalf("rank %d: got %s, want %s", i+1, members[i].ExternalUserID, want)
		}
	}
}

// Equal XP and equal creation time falls back to the id so the order is
// still total.
func TestSortStandingsIdFallback(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	members := []models.LeagueMembership{
		{ID: "bbb", WeeklyXP: 50, CreatedAt: at},
		{ID: "aaa", WeeklyXP: 50, CreatedAt: at},
	}
	sortStandings(members)
	if members[0].ID != "aaa" || members[1].ID != "bbb" {
		t.Fatalf("got order [%s %s], want [aaa bbb]", members[0].ID, members[1].ID)
	}
}

func TestRankOutcomeStandardCohort(t *testing.T) {
	const total, promo, demo = 30, 10, 5
	for rank := 1; rank <= total; rank++ {
		got := rankOutcome(rank, total, promo, demo)
		var want models.MembershipResult
		switch {
		case rank <= promo:
			want = models.ResultPromoted
		case rank > total-demo:
			want = models.ResultDemoted
		default:
			want = models.ResultStayed
		}
		if got != want {
			t.Fatalf("rank %d of %d: got %s, want %s", rank, total, got, want)
		}
	}
}

func TestRankOutcomeZoneBoundaries(t *testing.T) {
	tests := []struct {
		rank, total, promo, demo int
		want                     models.MembershipResult
	}{
		{10, 30, 10, 5, models.ResultPromoted}, // last promotion seat
		{11, 30, 10, 5, models.ResultStayed},   // first safe seat
		{25, 30, 10, 5, models.ResultStayed},   // last safe seat
		{26, 30, 10, 5, models.ResultDemoted},  // first demotion seat
		{30, 30, 10, 5, models.ResultDemoted},
		{1, 1, 10, 5, models.ResultPromoted}, // solo cohort
	}
	for _, tc := range tests {
		if got := rankOutcome(tc.rank, tc.total, tc.promo, tc.demo); got != tc.want {
			t.Fatalf("rank %d of %d (promo %d, demo %d): got %s, want %s",
				tc.rank, tc.total, tc.promo, tc.demo, got, tc.want)
		}
	}
}

// With a cohort smaller than the combined zones the bands overlap; promotion
// takes precedence so nobody is demoted out of the promotion seats.
func TestRankOutcomeTinyCohortPromotionWins(t *testing.T) {
	const total, promo, demo = 3, 10, 5
	for rank := 1; rank <= total; rank++ {
		if got := rankOutcome(rank, total, promo, demo); got != models.ResultPromoted {
			t.Fatalf("rank %d of %d: got %s, want PROMOTED", rank, total, got)
		}
	}
}

func TestZoneName(t *testing.T) {
	if zoneName(models.ResultPromoted) != "promotion" ||
		zoneName(models.ResultDemoted) != "demotion" ||
		zoneName(models.ResultStayed) != "safe" ||
		zoneName(models.ResultPending) != "safe" {
		t.Fatal("zone names out of sync with membership results")
	}
}

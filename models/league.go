package models

import (
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LeagueTier is one rung on the ordered weekly-league ladder. Movement is
// one rung per week, saturating at both ends.
type LeagueTier int

const (
	TierBronze LeagueTier = iota
	TierSilver
	TierGold
	TierSapphire
	TierRuby
	TierEmerald
	TierAmethyst
	TierPearl
	TierObsidian
	TierDiamond
)

const (
	LowestTier  = TierBronze
	HighestTier = TierDiamond
)

var tierNames = [...]string{
	"bronze", "silver", "gold", "sapphire", "ruby",
	"emerald", "amethyst", "pearl", "obsidian", "diamond",
}

var tierTitle = cases.Title(language.English)

// Valid reports whether t is a rung on the ladder.
func (t LeagueTier) Valid() bool {
	return t >= LowestTier && t <= HighestTier
}

// Next moves one rung up, saturating at the top.
func (t LeagueTier) Next() LeagueTier {
	if t >= HighestTier {
		return HighestTier
	}
	return t + 1
}

// Previous moves one rung down, saturating at the bottom.
func (t LeagueTier) Previous() LeagueTier {
	if t <= LowestTier {
		return LowestTier
	}
	return t - 1
}

// Name is the display name, e.g. "Bronze League".
func (t LeagueTier) Name() string {
	if !t.Valid() {
		return "Unknown League"
	}
	return tierTitle.String(tierNames[t]) + " League"
}

// Code is the URL-safe identifier, e.g. "bronze-league".
func (t LeagueTier) Code() string {
	return slug.Make(t.Name())
}

// Default rank-zone sizes for new leagues; stored per league so product can
// tune individual tiers later.
const (
	DefaultPromotionZoneSize = 10
	DefaultDemotionZoneSize  = 5
)

// League is one weekly cohort at a given tier. Exactly one row exists per
// (tier, week_start); rows are created lazily on first need.
type League struct {
	ID        string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Tier      LeagueTier `gorm:"not null;index:idx_league_tier_week,unique" json:"tier"`
	WeekStart time.Time  `gorm:"not null;index:idx_league_tier_week,unique" json:"week_start"`
	WeekEnd   time.Time  `gorm:"not null;index" json:"week_end"`

	PromotionZoneSize int `gorm:"not null;default:10" json:"promotion_zone_size"`
	DemotionZoneSize  int `gorm:"not null;default:5" json:"demotion_zone_size"`

	// FinalizedAt is set once the weekly close-out completed for this cohort.
	FinalizedAt *time.Time `gorm:"index" json:"finalized_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// MembershipResult is the week-end outcome for a cohort member.
type MembershipResult string

const (
	ResultPending  MembershipResult = "PENDING"
	ResultPromoted MembershipResult = "PROMOTED"
	ResultStayed   MembershipResult = "STAYED"
	ResultDemoted  MembershipResult = "DEMOTED"
)

// LeagueMembership is one learner's seat in a weekly cohort. Exactly one row
// exists per (user, week_start). WeeklyXP only ever grows within the week;
// FinalRank and Result are written by the close-out.
type LeagueMembership struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string    `gorm:"not null;index:idx_membership_user_week,unique" json:"external_user_id"`
	LeagueID       string    `gorm:"not null;index" json:"league_id"`
	WeekStart      time.Time `gorm:"not null;index:idx_membership_user_week,unique" json:"week_start"`

	WeeklyXP  int64            `gorm:"not null;default:0" json:"weekly_xp"`
	FinalRank *int             `json:"final_rank,omitempty"`
	Result    MembershipResult `gorm:"type:varchar(16);not null;default:'PENDING'" json:"result"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	League *League `gorm:"foreignKey:LeagueID" json:"league,omitempty"`
}

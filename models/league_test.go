package models

import "testing"

func TestLeagueTierNextSaturatesAtTop(t *testing.T) {
	if got := TierBronze.Next(); got != TierSilver {
		t.Fatalf("bronze.Next() = %v, want silver", got)
	}
	if got := TierObsidian.Next(); got != TierDiamond {
		t.Fatalf("obsidian.Next() = %v, want diamond", got)
	}
	if got := TierDiamond.Next(); got != TierDiamond {
		t.Fatalf("diamond.Next() = %v, want diamond (saturating)", got)
	}
}

func TestLeagueTierPreviousSaturatesAtBottom(t *testing.T) {
	if got := TierDiamond.Previous(); got != TierObsidian {
		t.Fatalf("diamond.Previous() = %v, want obsidian", got)
	}
	if got := TierSilver.Previous(); got != TierBronze {
		t.Fatalf("silver.Previous() = %v, want bronze", got)
	}
	if got := TierBronze.Previous(); got != TierBronze {
		t.Fatalf("bronze.Previous() = %v, want bronze (saturating)", got)
	}
}

func TestLeagueTierLadderIsClosed(t *testing.T) {
	// Walking the full ladder in either direction never leaves it.
	tier := LowestTier
	for i := 0; i < 20; i++ {
		tier = tier.Next()
		if !tier.Valid() {
			t.Fatalf("Next() walked off the ladder: %v", tier)
		}
	}
	if tier != HighestTier {
		t.Fatalf("expected to end at the top, got %v", tier)
	}
	for i := 0; i < 20; i++ {
		tier = tier.Previous()
		if !tier.Valid() {
			t.Fatalf("Previous() walked off the ladder: %v", tier)
		}
	}
	if tier != LowestTier {
		t.Fatalf("expected to end at the bottom, got %v", tier)
	}
}

func TestLeagueTierNames(t *testing.T) {
	tests := []struct {
		tier LeagueTier
		name string
		code string
	}{
		{TierBronze, "Bronze League", "bronze-league"},
		{TierSapphire, "Sapphire League", "sapphire-league"},
		{TierDiamond, "Diamond League", "diamond-league"},
	}
	for _, tc := range tests {
		if got := tc.tier.Name(); got != tc.name {
			t.Fatalf("Name() = %q, want %q", got, tc.name)
		}
		if got := tc.tier.Code(); got != tc.code {
			t.Fatalf("Code() = %q, want %q", got, tc.code)
		}
	}
}

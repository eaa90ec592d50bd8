package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rushteam/scentkit/core"
)

func TestRules_PriceTier(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		in   string
		want core.Tier
	}{
		{"budget brand", "Afnan 9 PM", core.TierBudget},
		{"budget brand multi word", "Al Haramain Amber Oud", core.TierBudget},
		{"luxury brand", "Creed Aventus", core.TierLuxury},
		{"luxury brand tom ford", "Tom Ford Oud Wood", core.TierLuxury},
		{"premium brand", "Dior Sauvage", core.TierPremium},
		{"unknown brand defaults to mid", "Nautica Voyage", core.TierMid},
		{"first rule wins over later rules", "Afnan tribute to Creed", core.TierBudget},
		{"case insensitive", "CREED Green Irish Tweed", core.TierLuxury},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.PriceTier(tt.in); got != tt.want {
				t.Errorf("PriceTier(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRules_OccasionTags(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		accords []string
		want    []string
	}{
		// fresh 同时命中 office/casual 组与 gym 组，结果取并集
		{"fresh hits two groups", []string{"fresh spicy"}, []string{"office", "casual", "date", "gym"}},
		{"citrus", []string{"citrus"}, []string{"office", "casual"}},
		{"sweet warm", []string{"sweet", "warm"}, []string{"date"}},
		{"woody leather", []string{"woody", "leather"}, []string{"formal"}},
		{"aquatic", []string{"aquatic"}, []string{"gym"}},
		{"no match falls back to casual", []string{"powdery"}, []string{"casual"}},
		{"empty accords fall back to casual", nil, []string{"casual"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.OccasionTags(tt.accords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("OccasionTags(%v) = %v, want %v", tt.accords, got, tt.want)
			}
		})
	}
}

func TestRules_VibeTags(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		accords []string
		want    []string
	}{
		{"fresh", []string{"fresh"}, []string{"fresh"}},
		{"warm spicy", []string{"warm spicy"}, []string{"warm"}},
		{"woody", []string{"woody"}, []string{"confident"}},
		{"sweet vanilla", []string{"sweet", "vanilla"}, []string{"bold"}},
		{"aromatic green", []string{"aromatic", "green"}, []string{"subtle"}},
		{"multiple groups keep encounter order", []string{"citrus", "woody"}, []string{"fresh", "confident"}},
		{"no match falls back to confident", []string{"musky"}, []string{"confident"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.VibeTags(tt.accords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VibeTags(%v) = %v, want %v", tt.accords, got, tt.want)
			}
		})
	}
}

func TestRules_IsComplimentGetter(t *testing.T) {
	rules := DefaultRules()

	if !rules.IsComplimentGetter([]string{"sweet", "woody"}) {
		t.Error("sweet accord should be a compliment getter")
	}
	if !rules.IsComplimentGetter([]string{"vanilla"}) {
		t.Error("vanilla accord should be a compliment getter")
	}
	if rules.IsComplimentGetter([]string{"leather", "smoky"}) {
		t.Error("leather/smoky should not be a compliment getter")
	}
	if rules.IsComplimentGetter(nil) {
		t.Error("empty accords should not be a compliment getter")
	}
}

func TestLoadRules_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	override := `
tiers:
  - brands: ["zara"]
    tier: budget
default_tier: premium
beginner_min_rating_count: 100
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	if got := rules.PriceTier("Zara Vibrant Leather"); got != core.TierBudget {
		t.Errorf("PriceTier(zara) = %v, want budget", got)
	}
	if got := rules.PriceTier("Creed Aventus"); got != core.TierPremium {
		t.Errorf("overridden tier table must replace built-ins, got %v", got)
	}
	if rules.BeginnerMinRatingCount != 100 {
		t.Errorf("BeginnerMinRatingCount = %d, want 100", rules.BeginnerMinRatingCount)
	}
	// 未覆盖的字段保留内置值
	if rules.BeginnerMinRating != 3.5 {
		t.Errorf("BeginnerMinRating = %v, want 3.5", rules.BeginnerMinRating)
	}
	if rules.DefaultOccasion != "casual" {
		t.Errorf("DefaultOccasion = %q, want casual", rules.DefaultOccasion)
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file must fail")
	}
}

func TestRules_BeginnerFriendly(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name        string
		rating      float64
		ratingCount int
		want        bool
	}{
		{"meets both thresholds", 3.5, 50, true},
		{"high rating high count", 4.6, 1200, true},
		{"rating below threshold", 3.4, 500, false},
		{"count below threshold", 4.8, 49, false},
		{"no evidence", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.BeginnerFriendly(tt.rating, tt.ratingCount); got != tt.want {
				t.Errorf("BeginnerFriendly(%v, %v) = %v, want %v", tt.rating, tt.ratingCount, got, tt.want)
			}
		})
	}
}

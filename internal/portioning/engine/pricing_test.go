package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

func TestPriceCheck_SelectsTierAndAppliesSurchargeAndDiscount(t *testing.T) {
	tiers := []PriceTier{
		{MinGuests: 50, PricePerHead: decimal.NewFromInt(2750)},
		{MinGuests: 100, PricePerHead: decimal.NewFromInt(2450)},
		{MinGuests: 200, PricePerHead: decimal.NewFromInt(2350)},
	}

	added := domain.DishInput{ID: 10, Name: "Extra Curry", CategoryID: 1, CategoryName: "Curry", AdditionSurcharge: decimal.NewFromInt(100)}
	removed := domain.DishInput{ID: 11, Name: "Plain Rice", CategoryID: 3, CategoryName: "Rice", RemovalDiscount: decimal.NewFromInt(25)}

	result, err := PriceCheck(PriceCheckInput{
		GuestCount:    150,
		Tiers:         tiers,
		AddedDishes:   []domain.DishInput{added},
		RemovedDishes: []domain.DishInput{removed},
		RoundingStep:  decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.TierPrice.Equal(decimal.NewFromInt(2450)) {
		t.Errorf("tier price = %s, want 2450", result.TierPrice)
	}
	if result.TierLabel != "100+ pax" {
		t.Errorf("tier label = %q, want %q", result.TierLabel, "100+ pax")
	}
	if !result.AdjustedPrice.Equal(decimal.NewFromInt(2525)) {
		t.Errorf("adjusted price = %s, want 2525", result.AdjustedPrice)
	}
}

func TestPriceCheck_NoTierBelowLowestThreshold(t *testing.T) {
	tiers := []PriceTier{{MinGuests: 50, PricePerHead: decimal.NewFromInt(2750)}}

	_, err := PriceCheck(PriceCheckInput{GuestCount: 20, Tiers: tiers, RoundingStep: decimal.NewFromInt(1)})
	if err != domain.ErrNoPriceTier {
		t.Fatalf("expected ErrNoPriceTier, got %v", err)
	}
}

func TestPriceCheck_TierSelectionIsMonotonic(t *testing.T) {
	tiers := []PriceTier{
		{MinGuests: 50, PricePerHead: decimal.NewFromInt(2750)},
		{MinGuests: 100, PricePerHead: decimal.NewFromInt(2450)},
		{MinGuests: 200, PricePerHead: decimal.NewFromInt(2350)},
	}

	low, err := PriceCheck(PriceCheckInput{GuestCount: 120, Tiers: tiers, RoundingStep: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	high, err := PriceCheck(PriceCheckInput{GuestCount: 220, Tiers: tiers, RoundingStep: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high.TierPrice.GreaterThan(low.TierPrice) {
		t.Errorf("higher guest count selected a more expensive tier: %s > %s", high.TierPrice, low.TierPrice)
	}
}

package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// PriceTier is a single guest-count breakpoint in a menu template's
// tiered pricing table.
type PriceTier struct {
	MinGuests    int
	PricePerHead decimal.Decimal
}

// PriceCheckInput bundles everything PriceCheck needs to price a
// modified dish set against a menu template's tiers.
type PriceCheckInput struct {
	GuestCount int
	Tiers      []PriceTier

	OriginalDishIDs map[int64]bool
	ModifiedDishIDs map[int64]bool

	// AddedDishes/RemovedDishes carry the catalogue metadata (name,
	// category, surcharge/discount overrides) for the ids in
	// ModifiedDishIDs \ OriginalDishIDs and vice versa.
	AddedDishes   []domain.DishInput
	RemovedDishes []domain.DishInput

	CategoryAdditionSurcharge map[int64]decimal.Decimal
	CategoryRemovalDiscount   map[int64]decimal.Decimal

	// RoundingStep rounds the final price to the nearest multiple of
	// this many currency units. Values ≤ 1 disable rounding.
	RoundingStep decimal.Decimal
}

// PriceCheck selects the highest tier whose min-guests threshold is at
// or below the guest count, then applies per-dish addition surcharges
// and removal discounts (falling back to the category default when a
// dish has no override of its own).
func PriceCheck(in PriceCheckInput) (domain.PriceCheckResult, error) {
	tier, ok := selectTier(in.Tiers, in.GuestCount)
	if !ok {
		return domain.PriceCheckResult{}, domain.ErrNoPriceTier
	}

	var breakdown []domain.PriceBreakdownEntry
	totalAdjustment := decimal.Zero

	for _, d := range in.AddedDishes {
		surcharge := d.AdditionSurcharge
		if surcharge.IsZero() {
			surcharge = in.CategoryAdditionSurcharge[d.CategoryID]
		}
		breakdown = append(breakdown, domain.PriceBreakdownEntry{
			DishName: d.Name, Category: d.CategoryName, Type: "addition", Amount: surcharge,
		})
		totalAdjustment = totalAdjustment.Add(surcharge)
	}

	for _, d := range in.RemovedDishes {
		discount := d.RemovalDiscount
		if discount.IsZero() {
			discount = in.CategoryRemovalDiscount[d.CategoryID]
		}
		breakdown = append(breakdown, domain.PriceBreakdownEntry{
			DishName: d.Name, Category: d.CategoryName, Type: "removal", Amount: discount.Neg(),
		})
		totalAdjustment = totalAdjustment.Sub(discount)
	}

	adjustedPrice := tier.PricePerHead.Add(totalAdjustment)
	step := in.RoundingStep
	if step.GreaterThan(decimal.NewFromInt(1)) {
		adjustedPrice = adjustedPrice.Div(step).Round(0).Mul(step)
	}

	return domain.PriceCheckResult{
		TierPrice:       tier.PricePerHead,
		TierLabel:       fmt.Sprintf("%d+ pax", tier.MinGuests),
		Breakdown:       breakdown,
		TotalAdjustment: totalAdjustment.Round(2),
		AdjustedPrice:   adjustedPrice.Round(2),
	}, nil
}

// selectTier picks the tier with the highest MinGuests that is still
// ≤ guestCount.
func selectTier(tiers []PriceTier, guestCount int) (PriceTier, bool) {
	var best PriceTier
	found := false
	for _, t := range tiers {
		if t.MinGuests > guestCount {
			continue
		}
		if !found || t.MinGuests > best.MinGuests {
			best = t
			found = true
		}
	}
	return best, found
}

// DiffDishIDs splits modified \ original (added) and original \
// modified (removed).
func DiffDishIDs(original, modified map[int64]bool) (added, removed map[int64]bool) {
	added = make(map[int64]bool)
	removed = make(map[int64]bool)
	for id := range modified {
		if !original[id] {
			added[id] = true
		}
	}
	for id := range original {
		if !modified[id] {
			removed[id] = true
		}
	}
	return added, removed
}

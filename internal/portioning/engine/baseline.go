// Package engine implements the pool-based portioning pipeline: pure
// functions over domain snapshots, no I/O, no shared state. Every
// function here is safe to call concurrently across requests.
package engine

import (
	"fmt"
	"sort"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// categoryGroup buckets dishes of a single pool by category id,
// preserving input order both across and within categories.
func groupByCategory(dishes []domain.DishInput) (order []int64, groups map[int64][]domain.DishInput) {
	groups = make(map[int64][]domain.DishInput)
	seen := make(map[int64]bool)
	for _, d := range dishes {
		if !seen[d.CategoryID] {
			seen[d.CategoryID] = true
			order = append(order, d.CategoryID)
		}
		groups[d.CategoryID] = append(groups[d.CategoryID], d)
	}
	return order, groups
}

// EstablishCategoryBudgets computes the per-category gram budget for a
// single pool's dishes, growing baselines with extra dishes in a
// category and redistributing the budget of categories absent from
// the menu proportionally across the categories that are present.
//
// poolBaselines carries baseline_budget_grams for every category in
// the pool, present or not; pass nil to skip redistribution entirely.
func EstablishCategoryBudgets(
	dishes []domain.DishInput,
	poolBaselines map[int64]float64,
	displayName func(categoryID int64) string,
	growthRate float64,
	redistributionFraction float64,
) (budgets map[int64]float64, adjustments []string) {
	order, groups := groupByCategory(dishes)
	budgets = make(map[int64]float64, len(order))

	for _, catID := range order {
		catDishes := groups[catID]
		ref := catDishes[0]
		n := float64(len(catDishes))
		baseline := ref.BaselineBudgetGrams
		minTotal := n * ref.MinPerDishGrams
		grown := baseline * (1 + growthRate*(n-1))
		budget := grown
		if minTotal > budget {
			budget = minTotal
		}
		budgets[catID] = budget

		switch {
		case minTotal > grown:
			adjustments = append(adjustments, fmt.Sprintf(
				"%s budget increased: %d dishes need at least %.0fg each, so budget grew from %.0fg to %.0fg",
				ref.CategoryName, len(catDishes), ref.MinPerDishGrams, grown, minTotal,
			))
		case len(catDishes) > 1 && growthRate > 0:
			adjustments = append(adjustments, fmt.Sprintf(
				"%s budget grew: %d dishes expanded baseline from %.0fg to %.0fg",
				ref.CategoryName, len(catDishes), baseline, grown,
			))
		}
	}

	if len(poolBaselines) > 0 {
		present := make(map[int64]bool, len(budgets))
		for catID := range budgets {
			present[catID] = true
		}

		var absentIDs []int64
		absentRaw := 0.0
		for catID, baseline := range poolBaselines {
			if !present[catID] {
				absentIDs = append(absentIDs, catID)
				absentRaw += baseline
			}
		}

		absent := absentRaw * redistributionFraction
		if absent > 0 {
			sumPresent := 0.0
			for _, b := range budgets {
				sumPresent += b
			}
			if sumPresent > 0 {
				for _, catID := range order {
					share := absent * (budgets[catID] / sumPresent)
					budgets[catID] += share
				}

				sort.Slice(absentIDs, func(i, j int) bool { return absentIDs[i] < absentIDs[j] })
				names := make([]string, 0, len(absentIDs))
				for _, catID := range absentIDs {
					if displayName != nil {
						names = append(names, displayName(catID))
					}
				}
				absentNames := joinOrDefault(names, "other categories")
				pct := roundToInt(redistributionFraction * 100)
				adjustments = append(adjustments, fmt.Sprintf(
					"No %s on menu — %d%% of their %.0fg budget (%.0fg) was spread across the categories that are present",
					absentNames, pct, absentRaw, absent,
				))
			}
		}
	}

	return budgets, adjustments
}

// ApplyPoolCeiling proportionally shrinks every category budget (and
// returns the scale factor used, so callers can shrink per-dish
// floors by the same amount) when the pool total exceeds ceiling.
func ApplyPoolCeiling(
	budgets map[int64]float64,
	ceiling float64,
	dishes []domain.DishInput,
) (reduced map[int64]float64, scale float64, adjustments []string) {
	order, groups := groupByCategory(dishes)

	poolTotal := 0.0
	for _, b := range budgets {
		poolTotal += b
	}
	if poolTotal <= ceiling {
		return budgets, 1.0, nil
	}

	scale = ceiling / poolTotal
	reduced = make(map[int64]float64, len(budgets))
	for catID, b := range budgets {
		reduced[catID] = b * scale
	}

	detailParts := make([]string, 0, len(order))
	for _, catID := range order {
		catName := fmt.Sprintf("cat_%d", catID)
		if cd := groups[catID]; len(cd) > 0 {
			catName = cd[0].CategoryName
		}
		detailParts = append(detailParts, fmt.Sprintf("%s %.0fg → %.0fg", catName, budgets[catID], reduced[catID]))
	}

	reductionPct := roundToInt((1 - scale) * 100)
	adjustments = []string{fmt.Sprintf(
		"Total exceeded %.0fg limit — all portions reduced by %d%% (%s)",
		ceiling, reductionPct, joinComma(detailParts),
	)}

	return reduced, scale, adjustments
}

// SplitByPopularity distributes each category's budget across its
// dishes, blending an equal split with a popularity-weighted split by
// popularityStrength, then flooring any dish below its effective
// minimum and rescaling the remainder to preserve the category total.
func SplitByPopularity(
	dishes []domain.DishInput,
	budgets map[int64]float64,
	popularityStrength float64,
	scaleFactor float64,
) (portions map[int64]float64, adjustments []string) {
	order, groups := groupByCategory(dishes)
	portions = make(map[int64]float64)

	for _, catID := range order {
		catDishes := groups[catID]
		budget := budgets[catID]
		n := len(catDishes)
		if n == 0 {
			continue
		}

		effectiveMin := catDishes[0].MinPerDishGrams * scaleFactor

		if popularityStrength <= 0 || n == 1 {
			share := budget / float64(n)
			for _, d := range catDishes {
				portions[d.ID] = maxFloat(share, effectiveMin)
			}
			continue
		}

		totalPopularity := 0.0
		for _, d := range catDishes {
			totalPopularity += d.Popularity
		}
		equalShare := budget / float64(n)

		for _, d := range catDishes {
			rawShare := equalShare
			if totalPopularity > 0 {
				rawShare = budget * (d.Popularity / totalPopularity)
			}
			portions[d.ID] = equalShare*(1-popularityStrength) + rawShare*popularityStrength
		}

		flooredIDs := make(map[int64]bool)
		flooredTotal := 0.0
		for _, d := range catDishes {
			if portions[d.ID] < effectiveMin {
				portions[d.ID] = effectiveMin
				flooredIDs[d.ID] = true
				flooredTotal += effectiveMin
			}
		}

		var nonFloored []domain.DishInput
		for _, d := range catDishes {
			if !flooredIDs[d.ID] {
				nonFloored = append(nonFloored, d)
			}
		}

		if len(nonFloored) > 0 && len(flooredIDs) > 0 {
			remainingBudget := budget - flooredTotal
			if remainingBudget > 0 {
				nonFlooredTotal := 0.0
				for _, d := range nonFloored {
					nonFlooredTotal += portions[d.ID]
				}
				if nonFlooredTotal > 0 {
					rescale := remainingBudget / nonFlooredTotal
					for _, d := range nonFloored {
						portions[d.ID] *= rescale
					}
				}
			}
		}
	}

	return portions, adjustments
}

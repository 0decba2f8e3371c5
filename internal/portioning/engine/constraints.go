package engine

import (
	"fmt"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// EnforceCategoryConstraints applies per-category max-per-dish caps
// and max-total caps across every dish, including service-pool dishes.
func EnforceCategoryConstraints(
	portions map[int64]float64,
	dishes []domain.DishInput,
	constraints domain.ResolvedConstraints,
) (updated map[int64]float64, adjustments []string) {
	order, groups := groupByCategory(dishes)

	for _, catID := range order {
		cc, ok := constraints.ByCategory[catID]
		if !ok || cc.MaxPerDishGrams == nil {
			continue
		}
		maxPortion := *cc.MaxPerDishGrams
		for _, d := range groups[catID] {
			if portions[d.ID] > maxPortion {
				portions[d.ID] = maxPortion
				adjustments = append(adjustments, fmt.Sprintf(
					"%s capped at %.0fg (max per dish for %s)", d.Name, maxPortion, d.CategoryName,
				))
			}
		}
	}

	for _, catID := range order {
		cc, ok := constraints.ByCategory[catID]
		if !ok || cc.MaxTotalGrams == nil {
			continue
		}
		maxTotal := *cc.MaxTotalGrams
		catDishes := groups[catID]

		catTotal := 0.0
		for _, d := range catDishes {
			catTotal += portions[d.ID]
		}
		if catTotal <= maxTotal {
			continue
		}

		catMin := 0.0
		if cc.MinPerDishGrams != nil {
			catMin = *cc.MinPerDishGrams
		}
		n := float64(len(catDishes))
		floorTotal := n * catMin

		if floorTotal >= maxTotal {
			for _, d := range catDishes {
				portions[d.ID] = catMin
			}
		} else {
			scale := maxTotal / catTotal
			for _, d := range catDishes {
				newVal := portions[d.ID] * scale
				portions[d.ID] = maxFloat(newVal, catMin)
			}
		}

		adjustments = append(adjustments, fmt.Sprintf(
			"%s total reduced from %.0fg to %.0fg (category limit)", catDishes[0].CategoryName, catTotal, maxTotal,
		))
	}

	return portions, adjustments
}

// EnforceGlobalConstraints applies the global max-food cap as a last
// resort across non-service dishes, then emits an advisory warning for
// every dish whose final portion is below its applicable minimum (the
// category minimum, else the global one; qty dishes are checked only
// against an explicit category minimum).
// Callers must restrict dishes/portions to the non-service subset.
func EnforceGlobalConstraints(
	portions map[int64]float64,
	dishes []domain.DishInput,
	constraints domain.ResolvedConstraints,
) (updated map[int64]float64, warnings []string, adjustments []string) {
	totalFood := 0.0
	for _, v := range portions {
		totalFood += v
	}

	maxFood := constraints.MaxTotalFoodPerPersonGrams
	if totalFood > maxFood {
		scale := maxFood / totalFood
		for id := range portions {
			portions[id] *= scale
		}
		warnings = append(warnings, fmt.Sprintf(
			"Total food was %.0fg per person — reduced to %.0fg limit", totalFood, maxFood,
		))
		adjustments = append(adjustments, fmt.Sprintf(
			"Total food exceeded %.0fg limit — all portions scaled down", maxFood,
		))
	}

	minPortion := constraints.MinPortionPerDishGrams
	for _, d := range dishes {
		catMin := minPortion
		if cc, ok := constraints.ByCategory[d.CategoryID]; ok && cc.MinPerDishGrams != nil {
			catMin = *cc.MinPerDishGrams
		} else if d.IsQty() {
			continue
		}
		if portions[d.ID] < catMin {
			warnings = append(warnings, fmt.Sprintf(
				"Cannot satisfy both minimum portion (%.0fg) and caps for '%s' (%.0fg). Consider removing a dish.",
				catMin, d.Name, portions[d.ID],
			))
		}
	}

	return portions, warnings, adjustments
}

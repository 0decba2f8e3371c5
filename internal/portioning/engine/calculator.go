package engine

import (
	"fmt"
	"strings"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// CalculateInput bundles everything one calculation needs, fully
// resolved by the caller: the engine performs no catalogue or config
// lookups of its own.
type CalculateInput struct {
	Dishes    []domain.DishInput
	GuestMix  domain.GuestMix
	BigEaters bool
	// BigEatersPercentage is applied as given when BigEaters is set; the
	// engine substitutes no default for zero (application.Service passes
	// 20 when the request leaves it unset).
	BigEatersPercentage float64

	Config      domain.GlobalConfig
	Constraints domain.ResolvedConstraints

	// Profile is the budget profile already selected by the caller via
	// SelectBudgetProfile, or nil if none matched.
	Profile            *domain.BudgetProfile
	ProfileAdjustments []string

	ProteinPoolBaselines       map[int64]float64
	AccompanimentPoolBaselines map[int64]float64
	DessertPoolBaselines       map[int64]float64
	DisplayName                func(categoryID int64) string

	// LadiesMultiplier is the "Ladies" GuestProfile's portion
	// multiplier, defaulting to 1.0 when no such profile is configured.
	LadiesMultiplier float64
}

// Calculate runs the full pool-based portioning pipeline and returns
// the per-dish breakdown, aggregate totals, warnings and the
// adjustments the engine applied to honour every constraint.
func Calculate(in CalculateInput) domain.CalculationResult {
	if len(in.Dishes) == 0 {
		return domain.CalculationResult{
			Portions:           nil,
			Totals:             domain.Totals{},
			Warnings:           []string{"No active dishes found for the given ids."},
			AdjustmentsApplied: nil,
		}
	}

	ladiesMult := in.LadiesMultiplier
	if ladiesMult == 0 {
		ladiesMult = 1.0
	}
	bigEatersPct := in.BigEatersPercentage
	bigEatersMult := 1.0
	if in.BigEaters {
		bigEatersMult = 1.0 + bigEatersPct/100.0
	}

	allAdjustments := append([]string{}, in.ProfileAdjustments...)

	var proteinDishes, accompanimentDishes, dessertDishes, serviceDishes []domain.DishInput
	for _, d := range in.Dishes {
		switch d.Pool {
		case domain.PoolProtein:
			proteinDishes = append(proteinDishes, d)
		case domain.PoolAccompaniment:
			accompanimentDishes = append(accompanimentDishes, d)
		case domain.PoolDessert:
			dessertDishes = append(dessertDishes, d)
		case domain.PoolService:
			serviceDishes = append(serviceDishes, d)
		}
	}

	menuWarnings := menuRecommendationWarnings(in.Dishes)

	portions := make(map[int64]float64, len(in.Dishes))

	if len(proteinDishes) > 0 {
		scale := runPool(proteinDishes, in.ProteinPoolBaselines, in.Config, in.Constraints.ProteinPoolCeilingGrams, in.DisplayName, portions, &allAdjustments)
		_ = scale
	}
	if len(accompanimentDishes) > 0 {
		runPool(accompanimentDishes, in.AccompanimentPoolBaselines, in.Config, in.Constraints.AccompanimentPoolCeilingGrams, in.DisplayName, portions, &allAdjustments)
	}
	if len(dessertDishes) > 0 {
		runPool(dessertDishes, in.DessertPoolBaselines, in.Config, in.Constraints.DessertPoolCeilingGrams, in.DisplayName, portions, &allAdjustments)
	}

	for _, d := range serviceDishes {
		if d.FixedPortionGrams != nil {
			portions[d.ID] = *d.FixedPortionGrams
		} else {
			portions[d.ID] = d.DefaultPortionGrams
		}
	}

	portions, catAdj := EnforceCategoryConstraints(portions, in.Dishes, in.Constraints)
	allAdjustments = append(allAdjustments, catAdj...)

	var nonServiceDishes []domain.DishInput
	for _, d := range in.Dishes {
		if d.Pool != domain.PoolService {
			nonServiceDishes = append(nonServiceDishes, d)
		}
	}

	var globalWarnings []string
	if len(nonServiceDishes) > 0 {
		nonServicePortions := make(map[int64]float64, len(nonServiceDishes))
		for _, d := range nonServiceDishes {
			nonServicePortions[d.ID] = portions[d.ID]
		}
		var globalAdj []string
		nonServicePortions, globalWarnings, globalAdj = EnforceGlobalConstraints(nonServicePortions, nonServiceDishes, in.Constraints)
		for id, v := range nonServicePortions {
			portions[id] = v
		}
		allAdjustments = append(allAdjustments, globalAdj...)
	}

	warnings := append(append([]string{}, menuWarnings...), globalWarnings...)

	if in.BigEaters {
		allAdjustments = append(allAdjustments, fmt.Sprintf("Big eaters: all portions increased by %.0f%%", bigEatersPct))
	}

	results := make([]domain.PortionResult, 0, len(in.Dishes))
	totalPeople := float64(in.GuestMix.Total())

	var totalFoodPerGent, totalFoodPerLady, totalFoodWeight, totalProteinPerPerson float64
	totalCost := zeroDecimal()

	for _, d := range in.Dishes {
		gramsGent := round1(portions[d.ID] * bigEatersMult)
		gramsLady := round1(gramsGent * ladiesMult)

		dishTotal := gramsGent*float64(in.GuestMix.Gents) + gramsLady*float64(in.GuestMix.Ladies)
		var gramsPerPerson float64
		if totalPeople > 0 {
			gramsPerPerson = round1(dishTotal / totalPeople)
		}

		costPerGent := d.CostPerGram.Mul(decimalFromFloat(gramsGent)).Round(2)
		dishTotalCost := d.CostPerGram.Mul(decimalFromFloat(dishTotal)).Round(2)

		results = append(results, domain.PortionResult{
			DishID:         d.ID,
			DishName:       d.Name,
			Category:       d.CategoryName,
			ProteinType:    d.ProteinType,
			Pool:           d.Pool,
			Unit:           d.Unit,
			GramsPerPerson: gramsPerPerson,
			GramsPerGent:   gramsGent,
			GramsPerLady:   gramsLady,
			TotalGrams:     round1(dishTotal),
			CostPerGent:    costPerGent,
			TotalCost:      dishTotalCost,
		})

		totalFoodPerGent += gramsGent
		totalFoodPerLady += gramsLady
		totalFoodWeight += dishTotal
		totalCost = totalCost.Add(dishTotalCost)
		if d.Pool == domain.PoolProtein {
			totalProteinPerPerson += dishTotal
		}
	}

	var foodPerPerson, proteinPerPerson float64
	if totalPeople > 0 {
		foodPerPerson = round1(totalFoodWeight / totalPeople)
		proteinPerPerson = round1(totalProteinPerPerson / totalPeople)
	}

	return domain.CalculationResult{
		Portions: results,
		Totals: domain.Totals{
			FoodPerGentGrams:      round1(totalFoodPerGent),
			FoodPerLadyGrams:      round1(totalFoodPerLady),
			FoodPerPersonGrams:    foodPerPerson,
			ProteinPerPersonGrams: proteinPerPerson,
			TotalFoodWeightGrams:  round1(totalFoodWeight),
			TotalCost:             totalCost,
		},
		Warnings:           warnings,
		AdjustmentsApplied: allAdjustments,
	}
}

// runPool runs the three allocator stages for one budgetised pool and
// writes the resulting per-dish portions into the shared portions map.
// It returns the pool ceiling scale factor actually applied (for
// callers that want to report it; the main pipeline doesn't need it).
func runPool(
	dishes []domain.DishInput,
	poolBaselines map[int64]float64,
	config domain.GlobalConfig,
	ceiling float64,
	displayName func(int64) string,
	portions map[int64]float64,
	allAdjustments *[]string,
) float64 {
	budgets, adj := EstablishCategoryBudgets(dishes, poolBaselines, displayName, config.DishGrowthRate, config.AbsentRedistributionFraction)
	*allAdjustments = append(*allAdjustments, adj...)

	budgets, scale, adj := ApplyPoolCeiling(budgets, ceiling, dishes)
	*allAdjustments = append(*allAdjustments, adj...)

	popStrength := 0.0
	if config.PopularityEnabled {
		popStrength = config.PopularityStrength
	}
	poolPortions, adj := SplitByPopularity(dishes, budgets, popStrength, scale)
	*allAdjustments = append(*allAdjustments, adj...)

	for id, v := range poolPortions {
		portions[id] = v
	}
	return scale
}

func menuRecommendationWarnings(dishes []domain.DishInput) []string {
	var warnings []string
	hasCurry, hasRice := false, false
	for _, d := range dishes {
		name := strings.ToLower(d.CategoryName)
		if strings.Contains(name, "curry") {
			hasCurry = true
		}
		if strings.Contains(name, "rice") {
			hasRice = true
		}
	}
	if !hasCurry {
		warnings = append(warnings, "Menu has no curry — at least one curry dish is recommended.")
	}
	if !hasRice {
		warnings = append(warnings, "Menu has no rice — at least one rice dish is recommended.")
	}
	return warnings
}

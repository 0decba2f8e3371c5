package engine

import (
	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// MenuSnapshotEntry is one dish's stored portion in a menu template,
// as persisted rather than computed live by the allocator.
type MenuSnapshotEntry struct {
	Dish         domain.DishInput
	PortionGrams float64
}

// PreviewInput bundles the stored snapshot a menu template preview is
// reconstructed from.
type PreviewInput struct {
	Entries          []MenuSnapshotEntry
	DefaultGents     int
	DefaultLadies    int
	LadiesMultiplier float64
}

// Preview reconstructs a CalculationResult-shaped result directly from
// a menu template's stored per-dish portions, without running the
// allocator. It carries no warnings; its single adjustment message
// announces that the result is a stored snapshot rather than a live
// calculation.
func Preview(in PreviewInput) domain.CalculationResult {
	ladiesMult := in.LadiesMultiplier
	if ladiesMult == 0 {
		ladiesMult = 1.0
	}
	totalPeople := float64(in.DefaultGents + in.DefaultLadies)

	results := make([]domain.PortionResult, 0, len(in.Entries))
	var totalFoodGent, totalFoodLady, totalFoodWeight, totalProteinPerPerson float64
	totalCost := decimal.Zero

	for _, e := range in.Entries {
		d := e.Dish
		gramsGent := round1(e.PortionGrams)
		gramsLady := round1(e.PortionGrams * ladiesMult)
		dishTotal := round1(gramsGent*float64(in.DefaultGents) + gramsLady*float64(in.DefaultLadies))

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
			TotalGrams:     dishTotal,
			CostPerGent:    costPerGent,
			TotalCost:      dishTotalCost,
		})

		totalFoodGent += gramsGent
		totalFoodLady += gramsLady
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
			FoodPerGentGrams:      round1(totalFoodGent),
			FoodPerLadyGrams:      round1(totalFoodLady),
			FoodPerPersonGrams:    foodPerPerson,
			ProteinPerPersonGrams: proteinPerPerson,
			TotalFoodWeightGrams:  round1(totalFoodWeight),
			TotalCost:             totalCost,
		},
		Warnings:           nil,
		AdjustmentsApplied: []string{"Showing stored template portions"},
	}
}

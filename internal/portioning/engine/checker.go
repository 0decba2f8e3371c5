package engine

import (
	"fmt"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// CheckInput bundles the resolved inputs CheckPortions needs: the
// user's submitted per-person grams keyed by dish id, the same
// catalogue/constraint snapshot a calculation would use, and the
// per-pool ceilings to validate the submission against.
type CheckInput struct {
	UserPortions map[int64]float64
	Dishes       []domain.DishInput
	Constraints  domain.ResolvedConstraints
	PoolCeilings map[domain.Pool]float64
	GuestMix     domain.GuestMix

	LadiesMultiplier    float64
	BigEaters           bool
	BigEatersPercentage float64
}

// CheckPortions validates a user-supplied portion plan against pool
// ceilings, category constraints and the global food cap, then
// expands the submitted portions through the guest mix the same way
// a calculation would (without cost fields).
func CheckPortions(in CheckInput) domain.CheckResult {
	var violations []domain.Violation

	poolTotals := make(map[domain.Pool]float64)
	for _, d := range in.Dishes {
		if d.Pool == domain.PoolService {
			continue
		}
		poolTotals[d.Pool] += in.UserPortions[d.ID]
	}

	for _, pool := range []domain.Pool{domain.PoolProtein, domain.PoolAccompaniment, domain.PoolDessert} {
		total, present := poolTotals[pool]
		if !present {
			continue
		}
		ceiling, ok := in.PoolCeilings[pool]
		if !ok || total <= ceiling {
			continue
		}
		violations = append(violations, domain.Violation{
			Type:     "pool_ceiling",
			Severity: "error",
			Message: fmt.Sprintf("%s pool total is %.0fg per person, exceeds ceiling of %.0fg",
				title(string(pool)), total, ceiling),
			Pool:    pool,
			Total:   round1(total),
			Ceiling: ceiling,
		})
	}

	order, groups := groupByCategory(in.Dishes)
	for _, catID := range order {
		catDishes := groups[catID]
		catName := catDishes[0].CategoryName
		isQty := catDishes[0].IsQty()
		cc, hasOverride := in.Constraints.ByCategory[catID]

		var catMin *float64
		if isQty && !(hasOverride && cc.MinPerDishGrams != nil) {
			catMin = nil
		} else {
			m := in.Constraints.MinPortionPerDishGrams
			if hasOverride && cc.MinPerDishGrams != nil {
				m = *cc.MinPerDishGrams
			}
			catMin = &m
		}

		if catMin != nil {
			unit := unitLabel(isQty)
			for _, d := range catDishes {
				userG := in.UserPortions[d.ID]
				if userG < *catMin {
					violations = append(violations, domain.Violation{
						Type:     "below_minimum",
						Severity: "warning",
						Message: fmt.Sprintf("%s is %.0f%s, below minimum of %.0f%s for %s",
							d.Name, userG, unit, *catMin, unit, catName),
					})
				}
			}
		}

		if hasOverride && cc.MaxPerDishGrams != nil {
			maxPortion := *cc.MaxPerDishGrams
			unit := unitLabel(isQty)
			for _, d := range catDishes {
				userG := in.UserPortions[d.ID]
				if userG > maxPortion {
					violations = append(violations, domain.Violation{
						Type:     "above_maximum",
						Severity: "error",
						Message: fmt.Sprintf("%s is %.0f%s, exceeds max of %.0f%s for %s",
							d.Name, userG, unit, maxPortion, unit, catName),
					})
				}
			}
		}

		if hasOverride && cc.MaxTotalGrams != nil {
			maxTotal := *cc.MaxTotalGrams
			unit := unitLabel(isQty)
			catTotal := 0.0
			for _, d := range catDishes {
				catTotal += in.UserPortions[d.ID]
			}
			if catTotal > maxTotal {
				violations = append(violations, domain.Violation{
					Type:     "category_total",
					Severity: "error",
					Message: fmt.Sprintf("%s total is %.0f%s, exceeds limit of %.0f%s",
						catName, catTotal, unit, maxTotal, unit),
					Total:   round1(catTotal),
					Ceiling: maxTotal,
				})
			}
		}
	}

	nonServiceTotal := 0.0
	for _, d := range in.Dishes {
		if d.Pool != domain.PoolService && !d.IsQty() {
			nonServiceTotal += in.UserPortions[d.ID]
		}
	}
	maxFood := in.Constraints.MaxTotalFoodPerPersonGrams
	if nonServiceTotal > maxFood {
		violations = append(violations, domain.Violation{
			Type:     "max_total_food",
			Severity: "error",
			Message: fmt.Sprintf("Total food is %.0fg per person, exceeds cap of %.0fg",
				nonServiceTotal, maxFood),
			Total:   round1(nonServiceTotal),
			Ceiling: maxFood,
		})
	}

	ladiesMult := in.LadiesMultiplier
	if ladiesMult == 0 {
		ladiesMult = 1.0
	}
	bigEatersMult := 1.0
	if in.BigEaters {
		bigEatersMult = 1.0 + in.BigEatersPercentage/100.0
	}
	totalPeople := float64(in.GuestMix.Total())

	expanded := make([]domain.PortionResult, 0, len(in.Dishes))
	var totalFoodPerGent, totalFoodPerLady, totalFoodWeight, totalProteinPerPerson float64

	for _, d := range in.Dishes {
		baseGrams := in.UserPortions[d.ID]
		gramsGent := round1(baseGrams * bigEatersMult)
		gramsLady := round1(gramsGent * ladiesMult)
		dishTotal := gramsGent*float64(in.GuestMix.Gents) + gramsLady*float64(in.GuestMix.Ladies)
		var gramsPerPerson float64
		if totalPeople > 0 {
			gramsPerPerson = round1(dishTotal / totalPeople)
		}

		expanded = append(expanded, domain.PortionResult{
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
		})

		totalFoodPerGent += gramsGent
		totalFoodPerLady += gramsLady
		totalFoodWeight += dishTotal
		if d.Pool == domain.PoolProtein {
			totalProteinPerPerson += dishTotal
		}
	}

	var foodPerPerson, proteinPerPerson float64
	if totalPeople > 0 {
		foodPerPerson = round1(totalFoodWeight / totalPeople)
		proteinPerPerson = round1(totalProteinPerPerson / totalPeople)
	}

	return domain.CheckResult{
		Violations:       violations,
		PortionsExpanded: expanded,
		Totals: domain.Totals{
			FoodPerGentGrams:      round1(totalFoodPerGent),
			FoodPerLadyGrams:      round1(totalFoodPerLady),
			FoodPerPersonGrams:    foodPerPerson,
			ProteinPerPersonGrams: proteinPerPerson,
			TotalFoodWeightGrams:  round1(totalFoodWeight),
		},
	}
}

func unitLabel(isQty bool) string {
	if isQty {
		return "pcs"
	}
	return "g"
}

func title(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}

package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

func baseConfig() domain.GlobalConfig {
	return domain.GlobalConfig{
		PopularityEnabled:             true,
		PopularityStrength:            0.3,
		ProteinPoolCeilingGrams:       590,
		AccompanimentPoolCeilingGrams: 150,
		DessertPoolCeilingGrams:       150,
		DishGrowthRate:                0.2,
		AbsentRedistributionFraction:  0.7,
	}
}

func baseConstraints() domain.ResolvedConstraints {
	return domain.ResolvedConstraints{
		MaxTotalFoodPerPersonGrams: 1000,
		MinPortionPerDishGrams:     30,
		ProteinPoolCeilingGrams:    590,
		ByCategory:                 map[int64]domain.CategoryConstraint{},
	}
}

func TestCalculate_NoDishesReturnsEmptyResultWithWarning(t *testing.T) {
	result := Calculate(CalculateInput{})

	if len(result.Portions) != 0 {
		t.Fatalf("expected no portions, got %d", len(result.Portions))
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != "No active dishes found for the given ids." {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
}

func TestCalculate_MenuLackingRiceWarnsBeforePoolMessages(t *testing.T) {
	curry := domain.DishInput{
		ID: 1, CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg,
		BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1, CostPerGram: decimal.NewFromFloat(0.01),
	}
	bbq := domain.DishInput{
		ID: 2, CategoryID: 2, CategoryName: "BBQ", Pool: domain.PoolProtein, Unit: domain.UnitKg,
		BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1, CostPerGram: decimal.NewFromFloat(0.02),
	}

	result := Calculate(CalculateInput{
		Dishes:      []domain.DishInput{curry, bbq},
		GuestMix:    domain.GuestMix{Gents: 50, Ladies: 50},
		Config:      baseConfig(),
		Constraints: baseConstraints(),
	})

	if len(result.Warnings) == 0 || result.Warnings[0] != "Menu has no rice — at least one rice dish is recommended." {
		t.Fatalf("expected the no-rice warning first, got %v", result.Warnings)
	}
}

func TestCalculate_CurryBBQRiceUnderCeilingNoScaling(t *testing.T) {
	curry := domain.DishInput{ID: 1, CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1}
	bbq := domain.DishInput{ID: 2, CategoryID: 2, CategoryName: "BBQ", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1}
	rice := domain.DishInput{ID: 3, CategoryID: 3, CategoryName: "Rice", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 100, MinPerDishGrams: 30, Popularity: 1}

	baselines := map[int64]float64{1: 160, 2: 180, 3: 100}

	result := Calculate(CalculateInput{
		Dishes:                     []domain.DishInput{curry, bbq, rice},
		GuestMix:                   domain.GuestMix{Gents: 50, Ladies: 50},
		Config:                     baseConfig(),
		Constraints:                baseConstraints(),
		ProteinPoolBaselines:       baselines,
		DisplayName:                displayNames(map[int64]string{1: "Curry", 2: "BBQ", 3: "Rice"}),
	})

	total := 0.0
	for _, p := range result.Portions {
		total += p.GramsPerGent
	}
	if diff := total - 440; diff > 1 || diff < -1 {
		t.Errorf("total protein portion = %.2f, want ≈ 440", total)
	}
	for _, a := range result.AdjustmentsApplied {
		if contains(a, "reduced by") {
			t.Errorf("unexpected scale-down adjustment for an under-ceiling menu: %q", a)
		}
	}
}

func TestCalculate_PopularityDisabledSplitsEvenlyRegardlessOfPopularity(t *testing.T) {
	popular := domain.DishInput{ID: 1, CategoryID: 1, CategoryName: "BBQ", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 10}
	unpopular := domain.DishInput{ID: 2, CategoryID: 1, CategoryName: "BBQ", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1}

	baselines := map[int64]float64{1: 180}

	config := baseConfig()
	config.PopularityEnabled = false

	result := Calculate(CalculateInput{
		Dishes:               []domain.DishInput{popular, unpopular},
		GuestMix:             domain.GuestMix{Gents: 50, Ladies: 50},
		Config:               config,
		Constraints:          baseConstraints(),
		ProteinPoolBaselines: baselines,
		DisplayName:          displayNames(map[int64]string{1: "BBQ"}),
	})

	byID := make(map[int64]float64, len(result.Portions))
	for _, p := range result.Portions {
		byID[p.DishID] = p.GramsPerGent
	}
	if byID[1] != byID[2] {
		t.Errorf("expected even split with popularity disabled, got %.2f vs %.2f", byID[1], byID[2])
	}
}

func TestCalculate_OverAllocatedProteinPoolScalesToCeiling(t *testing.T) {
	dishes := []domain.DishInput{
		{ID: 1, CategoryID: 2, CategoryName: "BBQ", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1},
		{ID: 2, CategoryID: 2, CategoryName: "BBQ", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1},
		{ID: 3, CategoryID: 2, CategoryName: "BBQ", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1},
		{ID: 4, CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1},
		{ID: 5, CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1},
		{ID: 6, CategoryID: 3, CategoryName: "Rice", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 100, MinPerDishGrams: 30, Popularity: 1},
	}

	// Grown budgets total 252 + 192 + 100 = 544g, above a 440g ceiling.
	constraints := baseConstraints()
	constraints.ProteinPoolCeilingGrams = 440

	result := Calculate(CalculateInput{
		Dishes:      dishes,
		GuestMix:    domain.GuestMix{Gents: 50, Ladies: 50},
		Config:      baseConfig(),
		Constraints: constraints,
		DisplayName: displayNames(nil),
	})

	total := 0.0
	for _, p := range result.Portions {
		total += p.GramsPerGent
	}
	if diff := total - 440; diff > 5 || diff < -5 {
		t.Errorf("total protein portion = %.2f, want ≈ 440", total)
	}

	foundScaleDown := false
	for _, a := range result.AdjustmentsApplied {
		if contains(a, "reduced by") {
			foundScaleDown = true
		}
	}
	if !foundScaleDown {
		t.Errorf("expected a pool-ceiling scale-down adjustment, got %v", result.AdjustmentsApplied)
	}
}

func TestCalculate_BigEatersScalesPortionsAndAppendsAdjustment(t *testing.T) {
	rice := domain.DishInput{ID: 1, CategoryID: 3, CategoryName: "Rice", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 100, MinPerDishGrams: 30, Popularity: 1}

	result := Calculate(CalculateInput{
		Dishes:              []domain.DishInput{rice},
		GuestMix:            domain.GuestMix{Gents: 10, Ladies: 10},
		Config:              baseConfig(),
		Constraints:         baseConstraints(),
		BigEaters:           true,
		BigEatersPercentage: 20,
		DisplayName:         displayNames(nil),
	})

	last := result.AdjustmentsApplied[len(result.AdjustmentsApplied)-1]
	if last != "Big eaters: all portions increased by 20%" {
		t.Errorf("expected the big-eaters message last, got %q", last)
	}
	if result.Portions[0].GramsPerGent <= 100 {
		t.Errorf("expected big-eaters scaling to raise the gent portion above baseline, got %.2f", result.Portions[0].GramsPerGent)
	}
}

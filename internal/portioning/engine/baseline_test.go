package engine

import (
	"testing"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

func displayNames(names map[int64]string) func(int64) string {
	return func(id int64) string { return names[id] }
}

func TestEstablishCategoryBudgets_SingleCurryRedistributesAbsentCategories(t *testing.T) {
	curry := domain.DishInput{ID: 1, CategoryID: 1, CategoryName: "Curry", BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1}
	baselines := map[int64]float64{1: 160, 2: 180, 3: 100}
	names := displayNames(map[int64]string{1: "Curry", 2: "BBQ", 3: "Rice"})

	budgets, adjustments := EstablishCategoryBudgets([]domain.DishInput{curry}, baselines, names, 0.2, 0.7)

	got := budgets[1]
	want := 356.0
	if diff := got - want; diff > 0.5 || diff < -0.5 {
		t.Fatalf("curry budget = %.2f, want ≈ %.2f", got, want)
	}
	if len(adjustments) == 0 {
		t.Fatalf("expected a redistribution adjustment message")
	}
	found := false
	for _, a := range adjustments {
		if contains(a, "spread across") {
			found = true
		}
	}
	if !found {
		t.Errorf("adjustments %v missing a spread-across message", adjustments)
	}
}

func TestEstablishCategoryBudgets_CurryAndRiceSplitRemainingAbsent(t *testing.T) {
	curry := domain.DishInput{ID: 1, CategoryID: 1, CategoryName: "Curry", BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1}
	rice := domain.DishInput{ID: 2, CategoryID: 3, CategoryName: "Rice", BaselineBudgetGrams: 100, MinPerDishGrams: 30, Popularity: 1}
	baselines := map[int64]float64{1: 160, 2: 180, 3: 100}
	names := displayNames(map[int64]string{1: "Curry", 2: "BBQ", 3: "Rice"})

	budgets, _ := EstablishCategoryBudgets([]domain.DishInput{curry, rice}, baselines, names, 0.2, 0.7)

	wantCurry, wantRice := 237.5, 148.5
	if diff := budgets[1] - wantCurry; diff > 1 || diff < -1 {
		t.Errorf("curry budget = %.2f, want ≈ %.2f", budgets[1], wantCurry)
	}
	if diff := budgets[3] - wantRice; diff > 1 || diff < -1 {
		t.Errorf("rice budget = %.2f, want ≈ %.2f", budgets[3], wantRice)
	}
}

func TestEstablishCategoryBudgets_AllPresentNoRedistribution(t *testing.T) {
	curry := domain.DishInput{ID: 1, CategoryID: 1, CategoryName: "Curry", BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1}
	bbq := domain.DishInput{ID: 2, CategoryID: 2, CategoryName: "BBQ", BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1}
	rice := domain.DishInput{ID: 3, CategoryID: 3, CategoryName: "Rice", BaselineBudgetGrams: 100, MinPerDishGrams: 30, Popularity: 1}
	baselines := map[int64]float64{1: 160, 2: 180, 3: 100}

	budgets, adjustments := EstablishCategoryBudgets([]domain.DishInput{curry, bbq, rice}, baselines, displayNames(nil), 0.2, 0.7)

	total := budgets[1] + budgets[2] + budgets[3]
	if diff := total - 440; diff > 0.01 || diff < -0.01 {
		t.Errorf("total budget = %.2f, want 440", total)
	}
	for _, a := range adjustments {
		if contains(a, "spread across") {
			t.Errorf("unexpected redistribution message when no category is absent: %q", a)
		}
	}
}

func TestApplyPoolCeiling_OverAllocatedScalesDown(t *testing.T) {
	bbq1 := domain.DishInput{ID: 1, CategoryID: 2, CategoryName: "BBQ", BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1}
	bbq2 := domain.DishInput{ID: 2, CategoryID: 2, CategoryName: "BBQ", BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1}
	bbq3 := domain.DishInput{ID: 3, CategoryID: 2, CategoryName: "BBQ", BaselineBudgetGrams: 180, MinPerDishGrams: 30, Popularity: 1}
	curry1 := domain.DishInput{ID: 4, CategoryID: 1, CategoryName: "Curry", BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1}
	curry2 := domain.DishInput{ID: 5, CategoryID: 1, CategoryName: "Curry", BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1}
	rice := domain.DishInput{ID: 6, CategoryID: 3, CategoryName: "Rice", BaselineBudgetGrams: 100, MinPerDishGrams: 30, Popularity: 1}

	dishes := []domain.DishInput{bbq1, bbq2, bbq3, curry1, curry2, rice}
	budgets, _ := EstablishCategoryBudgets(dishes, nil, displayNames(nil), 0.2, 0.7)

	// After growth the budgets are BBQ 252 + Curry 192 + Rice 100 = 544g,
	// so a 440g ceiling forces a scale-down.
	reduced, scale, adjustments := ApplyPoolCeiling(budgets, 440, dishes)
	if scale >= 1 {
		t.Fatalf("expected scale < 1 for an over-allocated pool, got %.3f", scale)
	}

	total := 0.0
	for _, v := range reduced {
		total += v
	}
	if diff := total - 440; diff > 5 || diff < -5 {
		t.Errorf("reduced total = %.2f, want ≈ 440", total)
	}
	if len(adjustments) != 1 {
		t.Fatalf("expected exactly one ceiling adjustment, got %v", adjustments)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

package engine

import (
	"testing"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

func TestCheckPortions_PoolCeilingViolation(t *testing.T) {
	curry1 := domain.DishInput{ID: 1, CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg, MinPerDishGrams: 30}
	curry2 := domain.DishInput{ID: 2, CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg, MinPerDishGrams: 30}
	rice := domain.DishInput{ID: 3, CategoryID: 3, CategoryName: "Rice", Pool: domain.PoolProtein, Unit: domain.UnitKg, MinPerDishGrams: 30}

	result := CheckPortions(CheckInput{
		UserPortions: map[int64]float64{1: 300, 2: 300, 3: 100},
		Dishes:       []domain.DishInput{curry1, curry2, rice},
		Constraints:  baseConstraints(),
		PoolCeilings: map[domain.Pool]float64{domain.PoolProtein: 500},
		GuestMix:     domain.GuestMix{Gents: 50, Ladies: 50},
	})

	var poolViolations []domain.Violation
	for _, v := range result.Violations {
		if v.Type == "pool_ceiling" {
			poolViolations = append(poolViolations, v)
		}
	}
	if len(poolViolations) != 1 {
		t.Fatalf("expected exactly one pool_ceiling violation, got %d: %v", len(poolViolations), result.Violations)
	}
	if poolViolations[0].Total != 700 {
		t.Errorf("violation total = %.1f, want 700", poolViolations[0].Total)
	}
	if poolViolations[0].Severity != "error" {
		t.Errorf("pool_ceiling severity = %q, want error", poolViolations[0].Severity)
	}
}

func TestCheckPortions_BelowMinimumSkipsQtyWithoutOverride(t *testing.T) {
	bread := domain.DishInput{ID: 1, CategoryID: 5, CategoryName: "Bread", Pool: domain.PoolAccompaniment, Unit: domain.UnitQty, MinPerDishGrams: 0}

	result := CheckPortions(CheckInput{
		UserPortions: map[int64]float64{1: 1},
		Dishes:       []domain.DishInput{bread},
		Constraints:  baseConstraints(),
		PoolCeilings: map[domain.Pool]float64{},
		GuestMix:     domain.GuestMix{Gents: 10, Ladies: 10},
	})

	for _, v := range result.Violations {
		if v.Type == "below_minimum" {
			t.Errorf("expected no below_minimum violation for a qty dish without a category override, got %v", v)
		}
	}
}

func TestCheckPortions_MaxTotalFoodExcludesQtyAndServiceDishes(t *testing.T) {
	curry := domain.DishInput{ID: 1, CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg, MinPerDishGrams: 30}
	bread := domain.DishInput{ID: 2, CategoryID: 5, CategoryName: "Bread", Pool: domain.PoolAccompaniment, Unit: domain.UnitQty, MinPerDishGrams: 0}
	plates := domain.DishInput{ID: 3, CategoryID: 6, CategoryName: "Plates", Pool: domain.PoolService, Unit: domain.UnitQty, MinPerDishGrams: 0}

	constraints := baseConstraints()
	constraints.MaxTotalFoodPerPersonGrams = 500

	result := CheckPortions(CheckInput{
		UserPortions: map[int64]float64{1: 450, 2: 20, 3: 500},
		Dishes:       []domain.DishInput{curry, bread, plates},
		Constraints:  constraints,
		PoolCeilings: map[domain.Pool]float64{domain.PoolProtein: 1000},
		GuestMix:     domain.GuestMix{Gents: 10, Ladies: 10},
	})

	for _, v := range result.Violations {
		if v.Type == "max_total_food" {
			t.Fatalf("expected no max_total_food violation once qty/service dishes are excluded, got %v", v)
		}
	}
}

// Package repository provides concrete adapters for the application
// layer's catalogue, configuration and menu-template interfaces:
// in-memory fixtures for tests and the CLI, and Postgres/Redis
// implementations for the running service.
package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
)

// category is the in-memory catalogue's view of a dish category.
type category struct {
	id                  int64
	name                string
	displayName         string
	pool                domain.Pool
	unit                domain.Unit
	baselineBudgetGrams float64
	minPerDishGrams     float64
	fixedPortionGrams   *float64
	additionSurcharge   decimal.Decimal
	removalDiscount     decimal.Decimal
}

// MemoryCatalogue is a fixture-backed CatalogueAdapter used by tests
// and the CLI tool. It seeds the same curry/bbq/rice protein-pool
// fixtures the allocator's seed scenarios are defined against.
type MemoryCatalogue struct {
	mu         sync.RWMutex
	categories map[int64]category
	dishes     map[int64]domain.DishInput
}

// NewMemoryCatalogue returns a catalogue seeded with the standard
// curry/bbq/rice fixture menu.
func NewMemoryCatalogue() *MemoryCatalogue {
	c := &MemoryCatalogue{
		categories: make(map[int64]category),
		dishes:     make(map[int64]domain.DishInput),
	}
	c.seedDefaults()
	return c
}

func (c *MemoryCatalogue) seedDefaults() {
	categories := []category{
		{id: 1, name: "curry", displayName: "Curry", pool: domain.PoolProtein, unit: domain.UnitKg, baselineBudgetGrams: 160, minPerDishGrams: 30},
		{id: 2, name: "bbq", displayName: "BBQ", pool: domain.PoolProtein, unit: domain.UnitKg, baselineBudgetGrams: 180, minPerDishGrams: 30},
		{id: 3, name: "rice", displayName: "Rice", pool: domain.PoolProtein, unit: domain.UnitKg, baselineBudgetGrams: 100, minPerDishGrams: 30},
		{id: 4, name: "salad", displayName: "Salad", pool: domain.PoolAccompaniment, unit: domain.UnitKg, baselineBudgetGrams: 80, minPerDishGrams: 20},
		{id: 5, name: "bread", displayName: "Bread", pool: domain.PoolAccompaniment, unit: domain.UnitQty, baselineBudgetGrams: 2, minPerDishGrams: 1},
		{id: 6, name: "dessert", displayName: "Dessert", pool: domain.PoolDessert, unit: domain.UnitKg, baselineBudgetGrams: 90, minPerDishGrams: 20},
		{id: 7, name: "plates", displayName: "Plates & Cutlery", pool: domain.PoolService, unit: domain.UnitQty, fixedPortionGrams: floatPtr(1)},
	}
	for _, cat := range categories {
		c.categories[cat.id] = cat
	}

	dishes := []struct {
		id         int64
		name       string
		catID      int64
		popularity float64
		costGram   float64
		vegetarian bool
		protein    domain.ProteinType
	}{
		{1, "Chicken Curry", 1, 1.2, 0.012, false, domain.ProteinChicken},
		{2, "Mutton Curry", 1, 0.8, 0.018, false, domain.ProteinMutton},
		{3, "Chicken BBQ", 2, 1.0, 0.014, false, domain.ProteinChicken},
		{4, "Fish BBQ", 2, 0.6, 0.02, false, domain.ProteinFish},
		{5, "Plain Rice", 3, 1.0, 0.003, true, domain.ProteinNone},
		{6, "Garden Salad", 4, 1.0, 0.004, true, domain.ProteinNone},
		{7, "Dinner Rolls", 5, 1.0, 0.05, true, domain.ProteinNone},
		{8, "Chocolate Mousse", 6, 1.0, 0.01, true, domain.ProteinNone},
		{9, "Disposable Plates", 7, 1.0, 0.0, true, domain.ProteinNone},
	}
	for _, d := range dishes {
		cat := c.categories[d.catID]
		c.dishes[d.id] = domain.DishInput{
			ID:                  d.id,
			Name:                d.name,
			CategoryID:          cat.id,
			CategoryName:        cat.displayName,
			Pool:                cat.pool,
			Unit:                cat.unit,
			DefaultPortionGrams: cat.baselineBudgetGrams,
			BaselineBudgetGrams: cat.baselineBudgetGrams,
			MinPerDishGrams:     cat.minPerDishGrams,
			FixedPortionGrams:   cat.fixedPortionGrams,
			Popularity:          d.popularity,
			ProteinType:         d.protein,
			IsVegetarian:        d.vegetarian,
			CostPerGram:         decimal.NewFromFloat(d.costGram),
		}
	}
}

func floatPtr(f float64) *float64 { return &f }

// LoadDishes implements application.CatalogueAdapter.
func (c *MemoryCatalogue) LoadDishes(_ context.Context, ids []int64) ([]domain.DishInput, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.DishInput, 0, len(ids))
	for _, id := range ids {
		if d, ok := c.dishes[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// PoolBaselines implements application.CatalogueAdapter.
func (c *MemoryCatalogue) PoolBaselines(_ context.Context, pool domain.Pool) (map[int64]float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[int64]float64)
	for _, cat := range c.categories {
		if cat.pool == pool {
			out[cat.id] = cat.baselineBudgetGrams
		}
	}
	return out, nil
}

// DisplayName implements application.CatalogueAdapter.
func (c *MemoryCatalogue) DisplayName(_ context.Context, categoryID int64) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if cat, ok := c.categories[categoryID]; ok {
		return cat.displayName, nil
	}
	return "", nil
}

// CategorySurchargeAndDiscount implements the menu-pricing lookup the
// application layer's MenuTemplateStore needs for category fallbacks.
func (c *MemoryCatalogue) CategorySurchargeAndDiscount(_ context.Context, categoryID int64) (decimal.Decimal, decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cat, ok := c.categories[categoryID]
	if !ok {
		return decimal.Zero, decimal.Zero, nil
	}
	return cat.additionSurcharge, cat.removalDiscount, nil
}

// CategoryIDsInPool returns every category id in the given pool,
// sorted ascending — used by the CLI to print a menu-building aid.
func (c *MemoryCatalogue) CategoryIDsInPool(pool domain.Pool) []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var ids []int64
	for _, cat := range c.categories {
		if cat.pool == pool {
			ids = append(ids, cat.id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var _ application.CatalogueAdapter = (*MemoryCatalogue)(nil)

// Package domain holds the pure types and business rules of the
// portioning engine: dishes, guest mixes, constraints and the shape of
// a calculation result. Nothing in this package performs I/O.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pool is the allocation pool a dish category belongs to. Budgets are
// established and capped per pool before being split across the
// dishes that belong to it.
type Pool string

const (
	PoolProtein       Pool = "protein"
	PoolAccompaniment Pool = "accompaniment"
	PoolDessert       Pool = "dessert"
	PoolService       Pool = "service"
)

// String implements fmt.Stringer.
func (p Pool) String() string { return string(p) }

// Valid reports whether p is one of the known pools.
func (p Pool) Valid() bool {
	switch p {
	case PoolProtein, PoolAccompaniment, PoolDessert, PoolService:
		return true
	default:
		return false
	}
}

// Unit is the measurement unit a dish category is portioned in.
type Unit string

const (
	UnitKg  Unit = "kg"
	UnitQty Unit = "qty"
)

func (u Unit) String() string { return string(u) }

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitQty:
		return true
	default:
		return false
	}
}

// ProteinType identifies the kind of protein a dish carries. The engine
// only passes it through to results for display; no rule depends on it.
type ProteinType string

const (
	ProteinChicken ProteinType = "chicken"
	ProteinMutton  ProteinType = "mutton"
	ProteinLamb    ProteinType = "lamb"
	ProteinBeef    ProteinType = "beef"
	ProteinVeal    ProteinType = "veal"
	ProteinFish    ProteinType = "fish"
	ProteinNone    ProteinType = "none"
)

// DishInput is a dish as loaded from the catalogue for a single
// calculation. FixedPortionGrams is only meaningful for the service
// pool, where per-dish allocation is skipped entirely.
type DishInput struct {
	ID           int64
	Name         string
	CategoryID   int64
	CategoryName string

	Pool Pool
	Unit Unit

	DefaultPortionGrams float64
	BaselineBudgetGrams float64
	MinPerDishGrams     float64
	FixedPortionGrams   *float64

	Popularity float64

	ProteinType       ProteinType
	ProteinIsAdditive bool
	IsVegetarian      bool

	CostPerGram decimal.Decimal

	// AdditionSurcharge and RemovalDiscount override the category's
	// defaults when this dish is added to, or removed from, a priced
	// menu template. A zero value means "use the category default".
	AdditionSurcharge decimal.Decimal
	RemovalDiscount   decimal.Decimal
}

// IsQty reports whether this dish is portioned in discrete pieces
// rather than weight.
func (d DishInput) IsQty() bool { return d.Unit == UnitQty }

// Validate checks that a catalogue-loaded dish carries a known pool
// and unit before it reaches the engine.
func (d DishInput) Validate() error {
	if !d.Pool.Valid() {
		return fmt.Errorf("dish %d: %w", d.ID, ErrInvalidPool)
	}
	if !d.Unit.Valid() {
		return fmt.Errorf("dish %d: %w", d.ID, ErrInvalidUnit)
	}
	return nil
}

// GuestMix describes the split of guests a calculation is sized for.
// Gents are the reference headcount; Ladies receive a multiplied
// portion via the "Ladies" GuestProfile.
type GuestMix struct {
	Gents  int
	Ladies int
}

// Total returns the combined headcount across both guest categories.
func (g GuestMix) Total() int { return g.Gents + g.Ladies }

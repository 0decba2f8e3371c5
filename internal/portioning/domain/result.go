package domain

import "github.com/shopspring/decimal"

// PortionResult is one dish's fully expanded portion across the
// requested guest mix.
type PortionResult struct {
	DishID       int64
	DishName     string
	Category     string
	ProteinType  ProteinType
	Pool         Pool
	Unit         Unit

	GramsPerPerson float64
	GramsPerGent   float64
	GramsPerLady   float64
	TotalGrams     float64

	CostPerGent decimal.Decimal
	TotalCost   decimal.Decimal
}

// Totals aggregates a calculation's portions into per-person and
// overall figures used for menu-level summaries.
type Totals struct {
	FoodPerGentGrams      float64
	FoodPerLadyGrams      float64
	FoodPerPersonGrams    float64
	ProteinPerPersonGrams float64
	TotalFoodWeightGrams  float64
	TotalCost             decimal.Decimal
}

// CalculationResult is the full output of a portion calculation: the
// per-dish breakdown, aggregate totals, any warnings raised along the
// way and the adjustments the engine silently applied to keep the
// result within its constraints.
type CalculationResult struct {
	Portions           []PortionResult
	Totals             Totals
	Warnings           []string
	AdjustmentsApplied []string
}

// Violation is a single discrepancy the checker found between a
// user-submitted portion plan and what the engine's constraints allow.
type Violation struct {
	Type     string
	Severity string // "warning" or "error"
	Message  string
	Pool     Pool
	Total    float64
	Ceiling  float64
}

// CheckResult is the output of validating a user-submitted portion
// plan against the resolved constraints for a calculation.
type CheckResult struct {
	Violations       []Violation
	PortionsExpanded []PortionResult
	Totals           Totals
}

// PriceBreakdownEntry is a single dish-level addition or removal
// adjustment applied when pricing a modified menu template.
type PriceBreakdownEntry struct {
	DishName string
	Category string
	Type     string // "addition" or "removal"
	Amount   decimal.Decimal
}

// PriceCheckResult is the output of pricing a menu template against a
// modified dish set and guest count.
type PriceCheckResult struct {
	TierPrice       decimal.Decimal
	TierLabel       string
	Breakdown       []PriceBreakdownEntry
	TotalAdjustment decimal.Decimal
	AdjustedPrice   decimal.Decimal
}

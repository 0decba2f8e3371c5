package domain

// GlobalConfig carries the tunables that shape every calculation:
// how aggressively popularity skews portions within a pool, the
// default per-pool ceilings, and the growth/redistribution behaviour
// used when establishing category budgets.
type GlobalConfig struct {
	PopularityEnabled             bool
	PopularityStrength            float64
	ProteinPoolCeilingGrams       float64
	AccompanimentPoolCeilingGrams float64
	DessertPoolCeilingGrams       float64
	DishGrowthRate                float64
	AbsentRedistributionFraction  float64
}

// DefaultGlobalConfig mirrors the singleton defaults a fresh
// deployment starts with.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		PopularityEnabled:             true,
		PopularityStrength:            0.3,
		ProteinPoolCeilingGrams:       440,
		AccompanimentPoolCeilingGrams: 150,
		DessertPoolCeilingGrams:       150,
		DishGrowthRate:                0.20,
		AbsentRedistributionFraction:  0.70,
	}
}

// GlobalConstraint carries the caps that apply across every pool
// regardless of which profile was selected.
type GlobalConstraint struct {
	MaxTotalFoodPerPersonGrams float64
	MinPortionPerDishGrams     float64
}

// DefaultGlobalConstraint mirrors the singleton defaults.
func DefaultGlobalConstraint() GlobalConstraint {
	return GlobalConstraint{
		MaxTotalFoodPerPersonGrams: 1000,
		MinPortionPerDishGrams:     30,
	}
}

// CategoryConstraint overrides min/max-per-dish and max-total caps for
// a single category. A nil pointer field means "no override, fall
// back to the global constraint or pool ceiling".
type CategoryConstraint struct {
	CategoryID      int64
	MinPerDishGrams *float64
	MaxPerDishGrams *float64
	MaxTotalGrams   *float64
}

// BudgetProfile is a named bundle of categories with optional
// per-pool ceiling overrides, selected per calculation by matching
// the requested dish set against the profile's category set.
type BudgetProfile struct {
	ID          int64
	Name        string
	Description string
	CategoryIDs []int64
	IsDefault   bool

	ProteinPoolCeilingGrams       *float64
	AccompanimentPoolCeilingGrams *float64
	DessertPoolCeilingGrams       *float64
}

// GuestProfile carries a named portion multiplier applied to a guest
// category other than the reference "gents" headcount. Only the
// "Ladies" profile is consumed by the engine today; the type is kept
// general so additional named multipliers can be added without an
// engine change.
type GuestProfile struct {
	Name              string
	PortionMultiplier float64
}

// CombinationRule reduces the combined budget of two or more
// categories served together (e.g. rice automatically offsets curry).
// No operation in this engine evaluates combination rules yet; they
// are loaded and carried through so a future allocator stage can use
// them without a storage-layer change.
type CombinationRule struct {
	ID              int64
	CategoryIDs     []int64
	ReductionFactor float64
	Description     string
	IsActive        bool
}

// ResolvedConstraints is the merged view of global and per-category
// constraints the engine actually applies during a single
// calculation: global caps, pool ceilings (profile override or
// default) and a lookup of per-category overrides.
type ResolvedConstraints struct {
	MaxTotalFoodPerPersonGrams float64
	MinPortionPerDishGrams     float64

	ProteinPoolCeilingGrams       float64
	AccompanimentPoolCeilingGrams float64
	DessertPoolCeilingGrams       float64

	ByCategory map[int64]CategoryConstraint
}

// PoolCeiling returns the resolved ceiling for the given pool, or 0
// (no ceiling) for pools that aren't capped by a pool-wide budget.
func (r ResolvedConstraints) PoolCeiling(pool Pool) float64 {
	switch pool {
	case PoolProtein:
		return r.ProteinPoolCeilingGrams
	case PoolAccompaniment:
		return r.AccompanimentPoolCeilingGrams
	case PoolDessert:
		return r.DessertPoolCeilingGrams
	default:
		return 0
	}
}

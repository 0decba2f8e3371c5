package application

import (
	"context"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// ConfigStore loads the tunables and constraint records a calculation
// resolves against. Implementations may cache aggressively since the
// host is responsible for reading them as one coherent snapshot per
// request.
type ConfigStore interface {
	GlobalConfig(ctx context.Context) (domain.GlobalConfig, error)
	GlobalConstraint(ctx context.Context) (domain.GlobalConstraint, error)
	CategoryConstraints(ctx context.Context) ([]domain.CategoryConstraint, error)

	// BudgetProfiles returns every profile in a stable order (e.g. by
	// id) so Jaccard-similarity ties resolve deterministically.
	BudgetProfiles(ctx context.Context) ([]domain.BudgetProfile, error)

	GuestProfiles(ctx context.Context) ([]domain.GuestProfile, error)
	CombinationRules(ctx context.Context) ([]domain.CombinationRule, error)
}

// ResolveConstraints merges the global constraint and per-category
// overrides loaded from store into a domain.ResolvedConstraints,
// ready for caller-supplied overrides to be layered on top.
func ResolveConstraints(gc domain.GlobalConstraint, categoryConstraints []domain.CategoryConstraint) domain.ResolvedConstraints {
	resolved := domain.ResolvedConstraints{
		MaxTotalFoodPerPersonGrams: gc.MaxTotalFoodPerPersonGrams,
		MinPortionPerDishGrams:     gc.MinPortionPerDishGrams,
		ByCategory:                 make(map[int64]domain.CategoryConstraint, len(categoryConstraints)),
	}
	for _, cc := range categoryConstraints {
		resolved.ByCategory[cc.CategoryID] = cc
	}
	return resolved
}

// GuestProfileMultiplier looks up a named guest profile's portion
// multiplier, defaulting to 1.0 when the profile isn't configured.
func GuestProfileMultiplier(profiles []domain.GuestProfile, name string) float64 {
	for _, gp := range profiles {
		if gp.Name == name {
			return gp.PortionMultiplier
		}
	}
	return 1.0
}

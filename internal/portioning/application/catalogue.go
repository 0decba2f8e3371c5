// Package application wires the pure engine to its external
// collaborators: the dish/category catalogue, configuration store,
// menu template store and audit trail. It holds no allocation logic
// of its own — only loading, validation and response assembly.
package application

import (
	"context"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// CatalogueAdapter resolves dish identifiers to catalogue snapshots.
// Implementations are read-only and must be safe for concurrent use;
// the engine makes no caching assumption about them.
type CatalogueAdapter interface {
	// LoadDishes resolves ids to active DishInput records, silently
	// skipping unknown or inactive ids.
	LoadDishes(ctx context.Context, ids []int64) ([]domain.DishInput, error)

	// PoolBaselines returns baseline_budget_grams for every category in
	// the given pool, present in the menu or not.
	PoolBaselines(ctx context.Context, pool domain.Pool) (map[int64]float64, error)

	// DisplayName returns the human-readable name for a category id,
	// used only in adjustment messages.
	DisplayName(ctx context.Context, categoryID int64) (string, error)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
)

// PostgresConfigStore implements application.ConfigStore against the
// global_config, global_constraint, category_constraints,
// budget_profiles, guest_profiles and combination_rules tables.
type PostgresConfigStore struct {
	db *sqlx.DB
}

// NewPostgresConfigStore wraps an already-connected sqlx.DB.
func NewPostgresConfigStore(db *sqlx.DB) *PostgresConfigStore {
	return &PostgresConfigStore{db: db}
}

type globalConfigRow struct {
	PopularityEnabled             bool    `db:"popularity_enabled"`
	PopularityStrength            float64 `db:"popularity_strength"`
	ProteinPoolCeilingGrams       float64 `db:"protein_pool_ceiling_grams"`
	AccompanimentPoolCeilingGrams float64 `db:"accompaniment_pool_ceiling_grams"`
	DessertPoolCeilingGrams       float64 `db:"dessert_pool_ceiling_grams"`
	DishGrowthRate                float64 `db:"dish_growth_rate"`
	AbsentRedistributionFraction  float64 `db:"absent_redistribution_fraction"`
}

// GlobalConfig implements application.ConfigStore. There is exactly
// one row in global_config; a missing row falls back to the system
// defaults rather than failing the request.
func (s *PostgresConfigStore) GlobalConfig(ctx context.Context) (domain.GlobalConfig, error) {
	var r globalConfigRow
	err := s.db.GetContext(ctx, &r, `
		SELECT popularity_enabled, popularity_strength, protein_pool_ceiling_grams,
		       accompaniment_pool_ceiling_grams, dessert_pool_ceiling_grams,
		       dish_growth_rate, absent_redistribution_fraction
		FROM global_config LIMIT 1`)
	if err == sql.ErrNoRows {
		return domain.DefaultGlobalConfig(), nil
	}
	if err != nil {
		return domain.GlobalConfig{}, fmt.Errorf("querying global config: %w", err)
	}
	return domain.GlobalConfig{
		PopularityEnabled:             r.PopularityEnabled,
		PopularityStrength:            r.PopularityStrength,
		ProteinPoolCeilingGrams:       r.ProteinPoolCeilingGrams,
		AccompanimentPoolCeilingGrams: r.AccompanimentPoolCeilingGrams,
		DessertPoolCeilingGrams:       r.DessertPoolCeilingGrams,
		DishGrowthRate:                r.DishGrowthRate,
		AbsentRedistributionFraction:  r.AbsentRedistributionFraction,
	}, nil
}

type globalConstraintRow struct {
	MaxTotalFoodPerPersonGrams float64 `db:"max_total_food_per_person_grams"`
	MinPortionPerDishGrams     float64 `db:"min_portion_per_dish_grams"`
}

// GlobalConstraint implements application.ConfigStore.
func (s *PostgresConfigStore) GlobalConstraint(ctx context.Context) (domain.GlobalConstraint, error) {
	var r globalConstraintRow
	err := s.db.GetContext(ctx, &r, `
		SELECT max_total_food_per_person_grams, min_portion_per_dish_grams
		FROM global_constraint LIMIT 1`)
	if err != nil {
		return domain.GlobalConstraint{}, fmt.Errorf("querying global constraint: %w", err)
	}
	return domain.GlobalConstraint{
		MaxTotalFoodPerPersonGrams: r.MaxTotalFoodPerPersonGrams,
		MinPortionPerDishGrams:     r.MinPortionPerDishGrams,
	}, nil
}

type categoryConstraintRow struct {
	CategoryID      int64    `db:"category_id"`
	MinPerDishGrams *float64 `db:"min_per_dish_grams"`
	MaxPerDishGrams *float64 `db:"max_per_dish_grams"`
	MaxTotalGrams   *float64 `db:"max_total_grams"`
}

// CategoryConstraints implements application.ConfigStore.
func (s *PostgresConfigStore) CategoryConstraints(ctx context.Context) ([]domain.CategoryConstraint, error) {
	var rows []categoryConstraintRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT category_id, min_per_dish_grams, max_per_dish_grams, max_total_grams
		FROM category_constraints`); err != nil {
		return nil, fmt.Errorf("querying category constraints: %w", err)
	}

	out := make([]domain.CategoryConstraint, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CategoryConstraint{
			CategoryID:      r.CategoryID,
			MinPerDishGrams: r.MinPerDishGrams,
			MaxPerDishGrams: r.MaxPerDishGrams,
			MaxTotalGrams:   r.MaxTotalGrams,
		})
	}
	return out, nil
}

type budgetProfileRow struct {
	ID                            int64          `db:"id"`
	Name                          string         `db:"name"`
	Description                   string         `db:"description"`
	CategoryIDs                   pq.Int64Array  `db:"category_ids"`
	IsDefault                     bool           `db:"is_default"`
	ProteinPoolCeilingGrams       *float64       `db:"protein_pool_ceiling_grams"`
	AccompanimentPoolCeilingGrams *float64       `db:"accompaniment_pool_ceiling_grams"`
	DessertPoolCeilingGrams       *float64       `db:"dessert_pool_ceiling_grams"`
}

// BudgetProfiles implements application.ConfigStore, ordering by id so
// Jaccard-similarity ties resolve deterministically.
func (s *PostgresConfigStore) BudgetProfiles(ctx context.Context) ([]domain.BudgetProfile, error) {
	var rows []budgetProfileRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, category_ids, is_default,
		       protein_pool_ceiling_grams, accompaniment_pool_ceiling_grams, dessert_pool_ceiling_grams
		FROM budget_profiles ORDER BY id`); err != nil {
		return nil, fmt.Errorf("querying budget profiles: %w", err)
	}

	out := make([]domain.BudgetProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.BudgetProfile{
			ID:                            r.ID,
			Name:                          r.Name,
			Description:                   r.Description,
			CategoryIDs:                   []int64(r.CategoryIDs),
			IsDefault:                     r.IsDefault,
			ProteinPoolCeilingGrams:       r.ProteinPoolCeilingGrams,
			AccompanimentPoolCeilingGrams: r.AccompanimentPoolCeilingGrams,
			DessertPoolCeilingGrams:       r.DessertPoolCeilingGrams,
		})
	}
	return out, nil
}

type guestProfileRow struct {
	Name              string  `db:"name"`
	PortionMultiplier float64 `db:"portion_multiplier"`
}

// GuestProfiles implements application.ConfigStore.
func (s *PostgresConfigStore) GuestProfiles(ctx context.Context) ([]domain.GuestProfile, error) {
	var rows []guestProfileRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT name, portion_multiplier FROM guest_profiles`); err != nil {
		return nil, fmt.Errorf("querying guest profiles: %w", err)
	}

	out := make([]domain.GuestProfile, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.GuestProfile{Name: r.Name, PortionMultiplier: r.PortionMultiplier})
	}
	return out, nil
}

type combinationRuleRow struct {
	ID              int64         `db:"id"`
	CategoryIDs     pq.Int64Array `db:"category_ids"`
	ReductionFactor float64       `db:"reduction_factor"`
	Description     string        `db:"description"`
	IsActive        bool          `db:"is_active"`
}

// CombinationRules implements application.ConfigStore.
func (s *PostgresConfigStore) CombinationRules(ctx context.Context) ([]domain.CombinationRule, error) {
	var rows []combinationRuleRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, category_ids, reduction_factor, description, is_active
		FROM combination_rules WHERE is_active = true`); err != nil {
		return nil, fmt.Errorf("querying combination rules: %w", err)
	}

	out := make([]domain.CombinationRule, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CombinationRule{
			ID:              r.ID,
			CategoryIDs:     []int64(r.CategoryIDs),
			ReductionFactor: r.ReductionFactor,
			Description:     r.Description,
			IsActive:        r.IsActive,
		})
	}
	return out, nil
}

// SetDefaultBudgetProfile atomically clears is_default on every other
// profile and sets it on id, so exactly one profile is ever flagged
// default.
func (s *PostgresConfigStore) SetDefaultBudgetProfile(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE budget_profiles SET is_default = false WHERE is_default = true`); err != nil {
		return fmt.Errorf("clearing existing default profile: %w", err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE budget_profiles SET is_default = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("setting default profile: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	} else if n == 0 {
		return fmt.Errorf("budget profile %d not found", id)
	}

	return tx.Commit()
}

var _ application.ConfigStore = (*PostgresConfigStore)(nil)

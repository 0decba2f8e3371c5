package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
)

// dishRow mirrors the dishes table, joined to its category for the
// fields a DishInput needs.
type dishRow struct {
	ID                  int64           `db:"id"`
	Name                string          `db:"name"`
	CategoryID          int64           `db:"category_id"`
	CategoryName        string          `db:"category_name"`
	Pool                string          `db:"pool"`
	Unit                string          `db:"unit"`
	DefaultPortionGrams float64         `db:"default_portion_grams"`
	BaselineBudgetGrams float64         `db:"baseline_budget_grams"`
	MinPerDishGrams     float64         `db:"min_per_dish_grams"`
	FixedPortionGrams   *float64        `db:"fixed_portion_grams"`
	Popularity          float64         `db:"popularity"`
	ProteinType         string          `db:"protein_type"`
	ProteinIsAdditive   bool            `db:"protein_is_additive"`
	IsVegetarian        bool            `db:"is_vegetarian"`
	CostPerGram         decimal.Decimal `db:"cost_per_gram"`
	AdditionSurcharge   decimal.Decimal `db:"addition_surcharge"`
	RemovalDiscount     decimal.Decimal `db:"removal_discount"`
}

func (r dishRow) toDomain() domain.DishInput {
	return domain.DishInput{
		ID:                  r.ID,
		Name:                r.Name,
		CategoryID:          r.CategoryID,
		CategoryName:        r.CategoryName,
		Pool:                domain.Pool(r.Pool),
		Unit:                domain.Unit(r.Unit),
		DefaultPortionGrams: r.DefaultPortionGrams,
		BaselineBudgetGrams: r.BaselineBudgetGrams,
		MinPerDishGrams:     r.MinPerDishGrams,
		FixedPortionGrams:   r.FixedPortionGrams,
		Popularity:          r.Popularity,
		ProteinType:         domain.ProteinType(r.ProteinType),
		ProteinIsAdditive:   r.ProteinIsAdditive,
		IsVegetarian:        r.IsVegetarian,
		CostPerGram:         r.CostPerGram,
		AdditionSurcharge:   r.AdditionSurcharge,
		RemovalDiscount:     r.RemovalDiscount,
	}
}

// PostgresCatalogue implements application.CatalogueAdapter against the
// dishes/categories tables.
type PostgresCatalogue struct {
	db *sqlx.DB
}

// NewPostgresCatalogue wraps an already-connected sqlx.DB.
func NewPostgresCatalogue(db *sqlx.DB) *PostgresCatalogue {
	return &PostgresCatalogue{db: db}
}

const dishSelect = `
	SELECT d.id, d.name, d.category_id, c.name AS category_name, c.pool, c.unit,
	       c.baseline_budget_grams AS default_portion_grams, c.baseline_budget_grams,
	       c.min_per_dish_grams, d.fixed_portion_grams, d.popularity,
	       d.protein_type, d.protein_is_additive, d.is_vegetarian,
	       d.cost_per_gram, d.addition_surcharge, d.removal_discount
	FROM dishes d
	JOIN categories c ON c.id = d.category_id
	WHERE d.is_active = true`

// LoadDishes implements application.CatalogueAdapter.
func (p *PostgresCatalogue) LoadDishes(ctx context.Context, ids []int64) ([]domain.DishInput, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(dishSelect+" AND d.id = ANY(?)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("building dish query: %w", err)
	}
	query = p.db.Rebind(query)

	var rows []dishRow
	if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying dishes: %w", err)
	}

	out := make([]domain.DishInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// PoolBaselines implements application.CatalogueAdapter.
func (p *PostgresCatalogue) PoolBaselines(ctx context.Context, pool domain.Pool) (map[int64]float64, error) {
	rows, err := p.db.QueryxContext(ctx, `
		SELECT id, baseline_budget_grams FROM categories WHERE pool = $1`, pool.String())
	if err != nil {
		return nil, fmt.Errorf("querying pool baselines: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]float64)
	for rows.Next() {
		var id int64
		var baseline float64
		if err := rows.Scan(&id, &baseline); err != nil {
			return nil, fmt.Errorf("scanning pool baseline: %w", err)
		}
		out[id] = baseline
	}
	return out, rows.Err()
}

// DisplayName implements application.CatalogueAdapter.
func (p *PostgresCatalogue) DisplayName(ctx context.Context, categoryID int64) (string, error) {
	var name string
	err := p.db.GetContext(ctx, &name, `SELECT name FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return "", fmt.Errorf("querying category name: %w", err)
	}
	return name, nil
}

var _ application.CatalogueAdapter = (*PostgresCatalogue)(nil)

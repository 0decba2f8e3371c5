package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
	"github.com/caterstack/portioning/internal/portioning/engine"
)

// PostgresMenuStore implements application.MenuTemplateStore against
// the menu_templates, menu_template_portions and menu_template_tiers
// tables. Category surcharge and discount still come from the
// categories table, the same as PostgresCatalogue.
type PostgresMenuStore struct {
	db               *sqlx.DB
	defaultRoundStep decimal.Decimal
}

// NewPostgresMenuStore wraps an already-connected sqlx.DB. defaultRoundStep
// is used when no per-deployment override exists.
func NewPostgresMenuStore(db *sqlx.DB, defaultRoundStep decimal.Decimal) *PostgresMenuStore {
	return &PostgresMenuStore{db: db, defaultRoundStep: defaultRoundStep}
}

type menuTemplateRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	MenuType      string `db:"menu_type"`
	IsActive      bool   `db:"is_active"`
	DefaultGents  int    `db:"default_gents"`
	DefaultLadies int    `db:"default_ladies"`
}

// GetTemplate implements application.MenuTemplateStore.
func (s *PostgresMenuStore) GetTemplate(ctx context.Context, id int64) (application.MenuTemplate, error) {
	var r menuTemplateRow
	err := s.db.GetContext(ctx, &r, `
		SELECT id, name, menu_type, is_active, default_gents, default_ladies
		FROM menu_templates WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return application.MenuTemplate{}, domain.ErrMenuTemplateNotFound
	}
	if err != nil {
		return application.MenuTemplate{}, fmt.Errorf("querying menu template %d: %w", id, err)
	}
	return application.MenuTemplate{
		ID:            r.ID,
		Name:          r.Name,
		MenuType:      r.MenuType,
		IsActive:      r.IsActive,
		DefaultGents:  r.DefaultGents,
		DefaultLadies: r.DefaultLadies,
	}, nil
}

type snapshotPortionRow struct {
	DishID       int64   `db:"dish_id"`
	PortionGrams float64 `db:"portion_grams"`
}

// SnapshotPortions implements application.MenuTemplateStore.
func (s *PostgresMenuStore) SnapshotPortions(ctx context.Context, templateID int64) ([]application.SnapshotPortion, error) {
	var rows []snapshotPortionRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT dish_id, portion_grams
		FROM menu_template_portions WHERE template_id = $1`, templateID); err != nil {
		return nil, fmt.Errorf("querying snapshot portions for template %d: %w", templateID, err)
	}

	out := make([]application.SnapshotPortion, 0, len(rows))
	for _, r := range rows {
		out = append(out, application.SnapshotPortion{DishID: r.DishID, PortionGrams: r.PortionGrams})
	}
	return out, nil
}

type priceTierRow struct {
	MinGuests    int             `db:"min_guests"`
	PricePerHead decimal.Decimal `db:"price_per_head"`
}

// PriceTiers implements application.MenuTemplateStore, ordered so the
// engine can walk tiers from the smallest guest count up.
func (s *PostgresMenuStore) PriceTiers(ctx context.Context, templateID int64) ([]engine.PriceTier, error) {
	var rows []priceTierRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT min_guests, price_per_head
		FROM menu_template_tiers WHERE template_id = $1 ORDER BY min_guests`, templateID); err != nil {
		return nil, fmt.Errorf("querying price tiers for template %d: %w", templateID, err)
	}

	out := make([]engine.PriceTier, 0, len(rows))
	for _, r := range rows {
		out = append(out, engine.PriceTier{MinGuests: r.MinGuests, PricePerHead: r.PricePerHead})
	}
	return out, nil
}

// RoundingStep implements application.MenuTemplateStore. pricing_config
// carries at most one row; a missing row falls back to defaultRoundStep.
func (s *PostgresMenuStore) RoundingStep(ctx context.Context) (decimal.Decimal, error) {
	var step decimal.Decimal
	err := s.db.GetContext(ctx, &step, `SELECT rounding_step FROM pricing_config LIMIT 1`)
	if err == sql.ErrNoRows {
		return s.defaultRoundStep, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying rounding step: %w", err)
	}
	return step, nil
}

// CategorySurchargeAndDiscount implements application.MenuTemplateStore.
func (s *PostgresMenuStore) CategorySurchargeAndDiscount(ctx context.Context, categoryID int64) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		AdditionSurcharge decimal.Decimal `db:"addition_surcharge"`
		RemovalDiscount   decimal.Decimal `db:"removal_discount"`
	}
	err := s.db.GetContext(ctx, &row, `
		SELECT addition_surcharge, removal_discount FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("querying category %d surcharge/discount: %w", categoryID, err)
	}
	return row.AdditionSurcharge, row.RemovalDiscount, nil
}

var _ application.MenuTemplateStore = (*PostgresMenuStore)(nil)

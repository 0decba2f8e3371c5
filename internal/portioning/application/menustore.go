package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/engine"
)

// MenuTemplate is a menu template's metadata and guest defaults.
type MenuTemplate struct {
	ID            int64
	Name          string
	MenuType      string
	IsActive      bool
	DefaultGents  int
	DefaultLadies int
}

// SnapshotPortion is one dish's pre-calculated portion stored against
// a menu template.
type SnapshotPortion struct {
	DishID       int64
	PortionGrams float64
}

// MenuTemplateStore loads menu templates, their stored portion
// snapshots and their tiered pricing.
type MenuTemplateStore interface {
	GetTemplate(ctx context.Context, id int64) (MenuTemplate, error)
	SnapshotPortions(ctx context.Context, templateID int64) ([]SnapshotPortion, error)
	PriceTiers(ctx context.Context, templateID int64) ([]engine.PriceTier, error)
	RoundingStep(ctx context.Context) (decimal.Decimal, error)
	CategorySurchargeAndDiscount(ctx context.Context, categoryID int64) (surcharge, discount decimal.Decimal, err error)
}

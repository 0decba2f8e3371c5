package repository

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
	"github.com/caterstack/portioning/internal/portioning/engine"
)

// MemoryMenuStore is a fixture-backed application.MenuTemplateStore
// used by tests and the CLI. It seeds one active template ("Standard
// Wedding Menu") with the tiered pricing spec.md's price-check
// scenarios are written against.
type MemoryMenuStore struct {
	mu         sync.RWMutex
	templates  map[int64]application.MenuTemplate
	snapshots  map[int64][]application.SnapshotPortion
	tiers      map[int64][]engine.PriceTier
	roundStep  decimal.Decimal
	catalogue  *MemoryCatalogue
}

// NewMemoryMenuStore seeds a single active template against catalogue.
func NewMemoryMenuStore(catalogue *MemoryCatalogue) *MemoryMenuStore {
	s := &MemoryMenuStore{
		templates: make(map[int64]application.MenuTemplate),
		snapshots: make(map[int64][]application.SnapshotPortion),
		tiers:     make(map[int64][]engine.PriceTier),
		roundStep: decimal.NewFromInt(1),
		catalogue: catalogue,
	}
	s.seedDefaults()
	return s
}

func (s *MemoryMenuStore) seedDefaults() {
	const templateID = 1
	s.templates[templateID] = application.MenuTemplate{
		ID:            templateID,
		Name:          "Standard Wedding Menu",
		MenuType:      "wedding",
		IsActive:      true,
		DefaultGents:  100,
		DefaultLadies: 100,
	}
	s.snapshots[templateID] = []application.SnapshotPortion{
		{DishID: 1, PortionGrams: 120},
		{DishID: 3, PortionGrams: 140},
		{DishID: 5, PortionGrams: 100},
		{DishID: 6, PortionGrams: 60},
		{DishID: 8, PortionGrams: 50},
	}
	s.tiers[templateID] = []engine.PriceTier{
		{MinGuests: 50, PricePerHead: decimal.NewFromInt(2750)},
		{MinGuests: 100, PricePerHead: decimal.NewFromInt(2450)},
		{MinGuests: 200, PricePerHead: decimal.NewFromInt(2350)},
	}
}

// GetTemplate implements application.MenuTemplateStore.
func (s *MemoryMenuStore) GetTemplate(_ context.Context, id int64) (application.MenuTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	if !ok {
		return application.MenuTemplate{}, domain.ErrMenuTemplateNotFound
	}
	return t, nil
}

// SnapshotPortions implements application.MenuTemplateStore.
func (s *MemoryMenuStore) SnapshotPortions(_ context.Context, templateID int64) ([]application.SnapshotPortion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]application.SnapshotPortion{}, s.snapshots[templateID]...), nil
}

// PriceTiers implements application.MenuTemplateStore.
func (s *MemoryMenuStore) PriceTiers(_ context.Context, templateID int64) ([]engine.PriceTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]engine.PriceTier{}, s.tiers[templateID]...), nil
}

// RoundingStep implements application.MenuTemplateStore.
func (s *MemoryMenuStore) RoundingStep(_ context.Context) (decimal.Decimal, error) {
	return s.roundStep, nil
}

// CategorySurchargeAndDiscount implements application.MenuTemplateStore
// by delegating to the catalogue's per-category fixture values.
func (s *MemoryMenuStore) CategorySurchargeAndDiscount(ctx context.Context, categoryID int64) (decimal.Decimal, decimal.Decimal, error) {
	return s.catalogue.CategorySurchargeAndDiscount(ctx, categoryID)
}

var _ application.MenuTemplateStore = (*MemoryMenuStore)(nil)

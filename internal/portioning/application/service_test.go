package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/caterstack/portioning/internal/portioning/domain"
	"github.com/caterstack/portioning/pkg/logger"
)

type mockCatalogue struct {
	mock.Mock
}

func (m *mockCatalogue) LoadDishes(ctx context.Context, ids []int64) ([]domain.DishInput, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DishInput), args.Error(1)
}

func (m *mockCatalogue) PoolBaselines(ctx context.Context, pool domain.Pool) (map[int64]float64, error) {
	args := m.Called(ctx, pool)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]float64), args.Error(1)
}

func (m *mockCatalogue) DisplayName(ctx context.Context, categoryID int64) (string, error) {
	args := m.Called(ctx, categoryID)
	return args.String(0), args.Error(1)
}

type mockConfigStore struct {
	mock.Mock
}

func (m *mockConfigStore) GlobalConfig(ctx context.Context) (domain.GlobalConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.GlobalConfig), args.Error(1)
}

func (m *mockConfigStore) GlobalConstraint(ctx context.Context) (domain.GlobalConstraint, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.GlobalConstraint), args.Error(1)
}

func (m *mockConfigStore) CategoryConstraints(ctx context.Context) ([]domain.CategoryConstraint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryConstraint), args.Error(1)
}

func (m *mockConfigStore) BudgetProfiles(ctx context.Context) ([]domain.BudgetProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetProfile), args.Error(1)
}

func (m *mockConfigStore) GuestProfiles(ctx context.Context) ([]domain.GuestProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuestProfile), args.Error(1)
}

func (m *mockConfigStore) CombinationRules(ctx context.Context) ([]domain.CombinationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CombinationRule), args.Error(1)
}

func newTestService(catalogue CatalogueAdapter, config ConfigStore) *Service {
	return NewService(catalogue, config, nil, nil, logger.NewNamed("test"))
}

func TestService_Calculate_ReturnsEngineResultForResolvedCatalogue(t *testing.T) {
	cat := new(mockCatalogue)
	cfg := new(mockConfigStore)

	dishes := []domain.DishInput{
		{ID: 1, Name: "Chicken Curry", CategoryID: 1, CategoryName: "Curry", Pool: domain.PoolProtein, Unit: domain.UnitKg, BaselineBudgetGrams: 160, MinPerDishGrams: 30, Popularity: 1, CostPerGram: decimal.NewFromFloat(0.01)},
	}

	cat.On("LoadDishes", mock.Anything, []int64{1}).Return(dishes, nil)
	cat.On("PoolBaselines", mock.Anything, domain.PoolProtein).Return(map[int64]float64{1: 160}, nil)
	cat.On("PoolBaselines", mock.Anything, domain.PoolAccompaniment).Return(map[int64]float64{}, nil)
	cat.On("PoolBaselines", mock.Anything, domain.PoolDessert).Return(map[int64]float64{}, nil)
	cat.On("DisplayName", mock.Anything, int64(1)).Return("Curry", nil)

	cfg.On("GlobalConfig", mock.Anything).Return(domain.DefaultGlobalConfig(), nil)
	cfg.On("GlobalConstraint", mock.Anything).Return(domain.DefaultGlobalConstraint(), nil)
	cfg.On("CategoryConstraints", mock.Anything).Return([]domain.CategoryConstraint{}, nil)
	cfg.On("BudgetProfiles", mock.Anything).Return([]domain.BudgetProfile{}, nil)
	cfg.On("GuestProfiles", mock.Anything).Return([]domain.GuestProfile{{Name: "Ladies", PortionMultiplier: 0.7}}, nil)

	svc := newTestService(cat, cfg)

	resp, err := svc.Calculate(context.Background(), CalculateRequest{
		DishIDs: []int64{1},
		Guests:  GuestMixRequest{Gents: 50, Ladies: 50},
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Portions, 1)
	assert.Equal(t, "Chicken Curry", resp.Portions[0].DishName)
	cat.AssertExpectations(t)
	cfg.AssertExpectations(t)
}

func TestService_CheckPortions_RejectsMismatchedDishIDSet(t *testing.T) {
	cat := new(mockCatalogue)
	cfg := new(mockConfigStore)
	svc := newTestService(cat, cfg)

	_, err := svc.CheckPortions(context.Background(), CheckPortionsRequest{
		CalculateRequest: CalculateRequest{
			DishIDs: []int64{1, 2},
			Guests:  GuestMixRequest{Gents: 10, Ladies: 10},
		},
		UserPortions: []UserPortionRequest{{DishID: 1, GramsPerPerson: 100}},
	})

	assert.ErrorIs(t, err, domain.ErrDishIDMismatch)
}

func TestToCalculateResponse_NeverReturnsNilSlices(t *testing.T) {
	resp := toCalculateResponse(domain.CalculationResult{}, "")
	assert.NotNil(t, resp.Warnings)
	assert.NotNil(t, resp.AdjustmentsApplied)
	assert.NotNil(t, resp.Portions)
}

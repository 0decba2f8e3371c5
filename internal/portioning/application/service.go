package application

import (
	"context"
	"fmt"

	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caterstack/portioning/internal/portioning/domain"
	"github.com/caterstack/portioning/internal/portioning/engine"
	"github.com/caterstack/portioning/pkg/logger"
)

// Service is the façade the transport layer calls through: it loads
// catalogue and configuration snapshots, hands them to the pure
// engine, records an audit event and shapes the response DTOs.
type Service struct {
	catalogue CatalogueAdapter
	config    ConfigStore
	menus     MenuTemplateStore
	audit     AuditPublisher
	logger    *logger.Logger
}

// NewService wires a Service from its collaborators.
func NewService(catalogue CatalogueAdapter, config ConfigStore, menus MenuTemplateStore, audit AuditPublisher, log *logger.Logger) *Service {
	return &Service{catalogue: catalogue, config: config, menus: menus, audit: audit, logger: log}
}

// Calculate resolves the catalogue/config snapshot for req and runs
// the portioning engine.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error) {
	if len(req.DishIDs) == 0 {
		return CalculateResponse{}, domain.ErrNoDishes
	}

	dishes, err := s.catalogue.LoadDishes(ctx, req.DishIDs)
	if err != nil {
		return CalculateResponse{}, fmt.Errorf("loading dishes: %w", err)
	}
	if err := validateDishes(dishes); err != nil {
		return CalculateResponse{}, err
	}

	calcInput, err := s.buildCalculateInput(ctx, dishes, req.Guests, req.BigEaters, req.BigEatersPercentage, req.ConstraintOverrides)
	if err != nil {
		return CalculateResponse{}, err
	}

	result := engine.Calculate(calcInput)

	requestID := uuid.NewString()
	if s.audit != nil {
		if pubErr := s.audit.PublishCalculation(ctx, CalculationAudited{
			RequestID:          requestID,
			OccurredAt:         time.Now().UTC(),
			DishIDs:            req.DishIDs,
			GuestMix:           domain.GuestMix{Gents: req.Guests.Gents, Ladies: req.Guests.Ladies},
			Warnings:           result.Warnings,
			AdjustmentsApplied: result.AdjustmentsApplied,
		}); pubErr != nil {
			s.logger.WithError(pubErr).WithField("request_id", requestID).Warn("failed to publish calculation audit event")
		}
	}

	return toCalculateResponse(result, ""), nil
}

// CheckPortions validates a user-submitted portion plan against the
// same constraints a calculation would use, then compares it to what
// the engine would have produced for the same inputs.
func (s *Service) CheckPortions(ctx context.Context, req CheckPortionsRequest) (CheckPortionsResponse, error) {
	dishIDSet := make(map[int64]bool, len(req.DishIDs))
	for _, id := range req.DishIDs {
		dishIDSet[id] = true
	}
	userPortions := make(map[int64]float64, len(req.UserPortions))
	for _, up := range req.UserPortions {
		userPortions[up.DishID] = up.GramsPerPerson
	}
	if len(userPortions) != len(dishIDSet) {
		return CheckPortionsResponse{}, domain.ErrDishIDMismatch
	}
	for id := range userPortions {
		if !dishIDSet[id] {
			return CheckPortionsResponse{}, domain.ErrDishIDMismatch
		}
	}

	dishes, err := s.catalogue.LoadDishes(ctx, req.DishIDs)
	if err != nil {
		return CheckPortionsResponse{}, fmt.Errorf("loading dishes: %w", err)
	}
	if err := validateDishes(dishes); err != nil {
		return CheckPortionsResponse{}, err
	}

	calcInput, err := s.buildCalculateInput(ctx, dishes, req.Guests, req.BigEaters, req.BigEatersPercentage, req.ConstraintOverrides)
	if err != nil {
		return CheckPortionsResponse{}, err
	}
	engineResult := engine.Calculate(calcInput)

	poolCeilings := map[domain.Pool]float64{
		domain.PoolProtein:       calcInput.Constraints.ProteinPoolCeilingGrams,
		domain.PoolAccompaniment: calcInput.Constraints.AccompanimentPoolCeilingGrams,
		domain.PoolDessert:       calcInput.Constraints.DessertPoolCeilingGrams,
	}

	checkResult := engine.CheckPortions(engine.CheckInput{
		UserPortions:        userPortions,
		Dishes:              dishes,
		Constraints:         calcInput.Constraints,
		PoolCeilings:        poolCeilings,
		GuestMix:            calcInput.GuestMix,
		LadiesMultiplier:    calcInput.LadiesMultiplier,
		BigEaters:           req.BigEaters,
		BigEatersPercentage: req.BigEatersPercentage,
	})

	return toCheckPortionsResponse(checkResult, engineResult), nil
}

// PriceCheck prices a modified dish set against a menu template's
// tiered pricing table.
func (s *Service) PriceCheck(ctx context.Context, templateID int64, req PriceCheckRequest) (PriceCheckResponse, error) {
	template, err := s.menus.GetTemplate(ctx, templateID)
	if err != nil {
		return PriceCheckResponse{}, fmt.Errorf("loading template: %w", err)
	}
	if !template.IsActive {
		return PriceCheckResponse{}, domain.ErrMenuTemplateNotFound
	}

	tiers, err := s.menus.PriceTiers(ctx, templateID)
	if err != nil {
		return PriceCheckResponse{}, fmt.Errorf("loading price tiers: %w", err)
	}
	snapshot, err := s.menus.SnapshotPortions(ctx, templateID)
	if err != nil {
		return PriceCheckResponse{}, fmt.Errorf("loading snapshot portions: %w", err)
	}
	roundingStep, err := s.menus.RoundingStep(ctx)
	if err != nil {
		return PriceCheckResponse{}, fmt.Errorf("loading rounding step: %w", err)
	}

	originalIDs := make(map[int64]bool, len(snapshot))
	for _, sp := range snapshot {
		originalIDs[sp.DishID] = true
	}
	modifiedIDs := make(map[int64]bool, len(req.DishIDs))
	for _, id := range req.DishIDs {
		modifiedIDs[id] = true
	}
	added, removed := engine.DiffDishIDs(originalIDs, modifiedIDs)

	addedIDs := setToSlice(added)
	removedIDs := setToSlice(removed)

	addedDishes, err := s.catalogue.LoadDishes(ctx, addedIDs)
	if err != nil {
		return PriceCheckResponse{}, fmt.Errorf("loading added dishes: %w", err)
	}
	removedDishes, err := s.catalogue.LoadDishes(ctx, removedIDs)
	if err != nil {
		return PriceCheckResponse{}, fmt.Errorf("loading removed dishes: %w", err)
	}
	if err := validateDishes(addedDishes); err != nil {
		return PriceCheckResponse{}, err
	}
	if err := validateDishes(removedDishes); err != nil {
		return PriceCheckResponse{}, err
	}

	categorySurcharge := make(map[int64]decimal.Decimal)
	categoryDiscount := make(map[int64]decimal.Decimal)
	for _, d := range append(append([]domain.DishInput{}, addedDishes...), removedDishes...) {
		if _, ok := categorySurcharge[d.CategoryID]; ok {
			continue
		}
		surcharge, discount, cErr := s.menus.CategorySurchargeAndDiscount(ctx, d.CategoryID)
		if cErr != nil {
			return PriceCheckResponse{}, fmt.Errorf("loading category surcharge/discount: %w", cErr)
		}
		categorySurcharge[d.CategoryID] = surcharge
		categoryDiscount[d.CategoryID] = discount
	}

	result, err := engine.PriceCheck(engine.PriceCheckInput{
		GuestCount:                req.GuestCount,
		Tiers:                     tiers,
		OriginalDishIDs:           originalIDs,
		ModifiedDishIDs:           modifiedIDs,
		AddedDishes:               addedDishes,
		RemovedDishes:             removedDishes,
		CategoryAdditionSurcharge: categorySurcharge,
		CategoryRemovalDiscount:   categoryDiscount,
		RoundingStep:              roundingStep,
	})
	if err != nil {
		return PriceCheckResponse{}, err
	}

	return toPriceCheckResponse(result), nil
}

// Preview reconstructs a calculation-shaped result from a template's
// stored portion snapshot, without running the engine.
func (s *Service) Preview(ctx context.Context, templateID int64) (CalculateResponse, error) {
	template, err := s.menus.GetTemplate(ctx, templateID)
	if err != nil {
		return CalculateResponse{}, fmt.Errorf("loading template: %w", err)
	}
	if !template.IsActive {
		return CalculateResponse{}, domain.ErrMenuTemplateNotFound
	}

	snapshot, err := s.menus.SnapshotPortions(ctx, templateID)
	if err != nil {
		return CalculateResponse{}, fmt.Errorf("loading snapshot portions: %w", err)
	}

	dishIDs := make([]int64, 0, len(snapshot))
	for _, sp := range snapshot {
		dishIDs = append(dishIDs, sp.DishID)
	}
	dishes, err := s.catalogue.LoadDishes(ctx, dishIDs)
	if err != nil {
		return CalculateResponse{}, fmt.Errorf("loading dishes: %w", err)
	}
	if err := validateDishes(dishes); err != nil {
		return CalculateResponse{}, err
	}
	dishByID := make(map[int64]domain.DishInput, len(dishes))
	for _, d := range dishes {
		dishByID[d.ID] = d
	}

	guestProfiles, err := s.config.GuestProfiles(ctx)
	if err != nil {
		return CalculateResponse{}, fmt.Errorf("loading guest profiles: %w", err)
	}

	entries := make([]engine.MenuSnapshotEntry, 0, len(snapshot))
	for _, sp := range snapshot {
		d, ok := dishByID[sp.DishID]
		if !ok {
			continue
		}
		entries = append(entries, engine.MenuSnapshotEntry{Dish: d, PortionGrams: sp.PortionGrams})
	}

	result := engine.Preview(engine.PreviewInput{
		Entries:          entries,
		DefaultGents:     template.DefaultGents,
		DefaultLadies:    template.DefaultLadies,
		LadiesMultiplier: GuestProfileMultiplier(guestProfiles, "Ladies"),
	})

	return toCalculateResponse(result, "template"), nil
}

func (s *Service) buildCalculateInput(
	ctx context.Context,
	dishes []domain.DishInput,
	guests GuestMixRequest,
	bigEaters bool,
	bigEatersPercentage float64,
	overrides *ConstraintOverridesRequest,
) (engine.CalculateInput, error) {
	if bigEatersPercentage == 0 && bigEaters {
		bigEatersPercentage = 20
	}

	globalConfig, err := s.config.GlobalConfig(ctx)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading global config: %w", err)
	}
	globalConstraint, err := s.config.GlobalConstraint(ctx)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading global constraint: %w", err)
	}
	categoryConstraints, err := s.config.CategoryConstraints(ctx)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading category constraints: %w", err)
	}
	profiles, err := s.config.BudgetProfiles(ctx)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading budget profiles: %w", err)
	}
	guestProfiles, err := s.config.GuestProfiles(ctx)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading guest profiles: %w", err)
	}

	categoryIDs := make([]int64, 0, len(dishes))
	seen := make(map[int64]bool)
	for _, d := range dishes {
		if !seen[d.CategoryID] {
			seen[d.CategoryID] = true
			categoryIDs = append(categoryIDs, d.CategoryID)
		}
	}

	profile := engine.SelectBudgetProfile(categoryIDs, profiles)
	proteinCeiling, accompanimentCeiling, dessertCeiling := engine.EffectivePoolCeilings(profile, globalConfig)

	var proteinCategoryNames []string
	proteinBaselines, err := s.catalogue.PoolBaselines(ctx, domain.PoolProtein)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading protein pool baselines: %w", err)
	}
	for catID := range proteinBaselines {
		name, nameErr := s.catalogue.DisplayName(ctx, catID)
		if nameErr == nil {
			proteinCategoryNames = append(proteinCategoryNames, name)
		}
	}
	accompanimentBaselines, err := s.catalogue.PoolBaselines(ctx, domain.PoolAccompaniment)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading accompaniment pool baselines: %w", err)
	}
	dessertBaselines, err := s.catalogue.PoolBaselines(ctx, domain.PoolDessert)
	if err != nil {
		return engine.CalculateInput{}, fmt.Errorf("loading dessert pool baselines: %w", err)
	}

	profileAdjustments := engine.ProfileCeilingAdjustments(profile, globalConfig, proteinCategoryNames)

	resolved := ResolveConstraints(globalConstraint, categoryConstraints)
	resolved.ProteinPoolCeilingGrams = proteinCeiling
	resolved.AccompanimentPoolCeilingGrams = accompanimentCeiling
	resolved.DessertPoolCeilingGrams = dessertCeiling
	if overrides != nil {
		if overrides.MaxTotalFoodPerPersonGrams != nil {
			resolved.MaxTotalFoodPerPersonGrams = *overrides.MaxTotalFoodPerPersonGrams
		}
		if overrides.MinPortionPerDishGrams != nil {
			resolved.MinPortionPerDishGrams = *overrides.MinPortionPerDishGrams
		}
	}

	return engine.CalculateInput{
		Dishes:                     dishes,
		GuestMix:                   domain.GuestMix{Gents: guests.Gents, Ladies: guests.Ladies},
		BigEaters:                  bigEaters,
		BigEatersPercentage:        bigEatersPercentage,
		Config:                     globalConfig,
		Constraints:                resolved,
		Profile:                    profile,
		ProfileAdjustments:         profileAdjustments,
		ProteinPoolBaselines:       proteinBaselines,
		AccompanimentPoolBaselines: accompanimentBaselines,
		DessertPoolBaselines:       dessertBaselines,
		DisplayName: func(categoryID int64) string {
			name, nameErr := s.catalogue.DisplayName(ctx, categoryID)
			if nameErr != nil {
				return ""
			}
			return name
		},
		LadiesMultiplier: GuestProfileMultiplier(guestProfiles, "Ladies"),
	}, nil
}

func validateDishes(dishes []domain.DishInput) error {
	for _, d := range dishes {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func setToSlice(set map[int64]bool) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

package application

import (
	"math"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

func toPortionResponse(p domain.PortionResult) PortionResponse {
	return PortionResponse{
		DishID:         p.DishID,
		DishName:       p.DishName,
		Category:       p.Category,
		ProteinType:    string(p.ProteinType),
		Pool:           string(p.Pool),
		Unit:           string(p.Unit),
		GramsPerPerson: p.GramsPerPerson,
		GramsPerGent:   p.GramsPerGent,
		GramsPerLady:   p.GramsPerLady,
		TotalGrams:     p.TotalGrams,
		CostPerGent:    p.CostPerGent.StringFixed(2),
		TotalCost:      p.TotalCost.StringFixed(2),
	}
}

func toTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		FoodPerGentGrams:      t.FoodPerGentGrams,
		FoodPerLadyGrams:      t.FoodPerLadyGrams,
		FoodPerPersonGrams:    t.FoodPerPersonGrams,
		ProteinPerPersonGrams: t.ProteinPerPersonGrams,
		TotalFoodWeightGrams:  t.TotalFoodWeightGrams,
		TotalCost:             t.TotalCost.StringFixed(2),
	}
}

func toCalculateResponse(result domain.CalculationResult, source string) CalculateResponse {
	portions := make([]PortionResponse, 0, len(result.Portions))
	for _, p := range result.Portions {
		portions = append(portions, toPortionResponse(p))
	}
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	adjustments := result.AdjustmentsApplied
	if adjustments == nil {
		adjustments = []string{}
	}
	return CalculateResponse{
		Portions:           portions,
		Totals:             toTotalsResponse(result.Totals),
		Warnings:           warnings,
		AdjustmentsApplied: adjustments,
		Source:             source,
	}
}

func toViolationResponse(v domain.Violation) ViolationResponse {
	return ViolationResponse{
		Type:     v.Type,
		Severity: v.Severity,
		Message:  v.Message,
		Pool:     string(v.Pool),
		Total:    v.Total,
		Ceiling:  v.Ceiling,
	}
}

func toCheckPortionsResponse(check domain.CheckResult, engineResult domain.CalculationResult) CheckPortionsResponse {
	violations := make([]ViolationResponse, 0, len(check.Violations))
	for _, v := range check.Violations {
		violations = append(violations, toViolationResponse(v))
	}

	userExpanded := make([]PortionResponse, 0, len(check.PortionsExpanded))
	for _, p := range check.PortionsExpanded {
		userExpanded = append(userExpanded, toPortionResponse(p))
	}

	enginePortions := make([]PortionResponse, 0, len(engineResult.Portions))
	for _, p := range engineResult.Portions {
		enginePortions = append(enginePortions, toPortionResponse(p))
	}

	engineByID := make(map[int64]domain.PortionResult, len(engineResult.Portions))
	for _, p := range engineResult.Portions {
		engineByID[p.DishID] = p
	}

	comparison := make([]ComparisonEntry, 0, len(check.PortionsExpanded))
	for _, up := range check.PortionsExpanded {
		ep, ok := engineByID[up.DishID]
		if !ok {
			continue
		}
		deltaGrams := round1(up.GramsPerPerson - ep.GramsPerPerson)
		var deltaPercent float64
		if ep.GramsPerPerson != 0 {
			deltaPercent = round1(deltaGrams / ep.GramsPerPerson * 100)
		}
		comparison = append(comparison, ComparisonEntry{
			DishID:       up.DishID,
			DishName:     up.DishName,
			Category:     up.Category,
			Pool:         string(up.Pool),
			Unit:         string(up.Unit),
			UserGrams:    up.GramsPerPerson,
			EngineGrams:  ep.GramsPerPerson,
			DeltaGrams:   deltaGrams,
			DeltaPercent: deltaPercent,
		})
	}

	return CheckPortionsResponse{
		Violations:           violations,
		UserPortionsExpanded: userExpanded,
		EnginePortions:       enginePortions,
		Comparison:           comparison,
		UserTotals:           toTotalsResponse(check.Totals),
		EngineTotals:         toTotalsResponse(engineResult.Totals),
	}
}

func toPriceCheckResponse(result domain.PriceCheckResult) PriceCheckResponse {
	breakdown := make([]PriceBreakdownResponse, 0, len(result.Breakdown))
	for _, b := range result.Breakdown {
		breakdown = append(breakdown, PriceBreakdownResponse{
			Dish:     b.DishName,
			Category: b.Category,
			Type:     b.Type,
			Amount:   b.Amount.StringFixed(2),
		})
	}
	return PriceCheckResponse{
		TierPrice:       result.TierPrice.StringFixed(2),
		TierLabel:       result.TierLabel,
		Breakdown:       breakdown,
		TotalAdjustment: result.TotalAdjustment.StringFixed(2),
		AdjustedPrice:   result.AdjustedPrice.StringFixed(2),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

package application

// GuestMixRequest is the guest-mix portion of a calculate/check request.
type GuestMixRequest struct {
	Gents  int `json:"gents" validate:"min=0"`
	Ladies int `json:"ladies" validate:"min=0"`
}

// ConstraintOverridesRequest carries the only two constraint fields a
// caller may override at the call boundary.
type ConstraintOverridesRequest struct {
	MaxTotalFoodPerPersonGrams *float64 `json:"max_total_food_per_person_grams,omitempty" validate:"omitempty,gt=0"`
	MinPortionPerDishGrams     *float64 `json:"min_portion_per_dish_grams,omitempty" validate:"omitempty,gte=0"`
}

// CalculateRequest is the body of POST /calculate.
type CalculateRequest struct {
	DishIDs             []int64                     `json:"dish_ids" validate:"required,min=1,dive,gt=0"`
	Guests              GuestMixRequest             `json:"guests" validate:"required"`
	BigEaters           bool                        `json:"big_eaters"`
	BigEatersPercentage float64                     `json:"big_eaters_percentage" validate:"gte=0,lte=100"`
	ConstraintOverrides *ConstraintOverridesRequest `json:"constraint_overrides,omitempty"`
}

// UserPortionRequest is one dish's operator-entered per-person grams.
type UserPortionRequest struct {
	DishID         int64   `json:"dish_id" validate:"required,gt=0"`
	GramsPerPerson float64 `json:"grams_per_person" validate:"gte=0"`
}

// CheckPortionsRequest is the body of POST /check-portions.
type CheckPortionsRequest struct {
	CalculateRequest
	UserPortions []UserPortionRequest `json:"user_portions" validate:"required,min=1,dive"`
}

// PriceCheckRequest is the body of POST /menus/{id}/price-check.
type PriceCheckRequest struct {
	GuestCount int     `json:"guest_count" validate:"required,gt=0"`
	DishIDs    []int64 `json:"dish_ids" validate:"required,min=1,dive,gt=0"`
}

// PortionResponse is one dish's expanded portion in a calculate response.
type PortionResponse struct {
	DishID         int64   `json:"dish_id"`
	DishName       string  `json:"dish_name"`
	Category       string  `json:"category"`
	ProteinType    string  `json:"protein_type"`
	Pool           string  `json:"pool"`
	Unit           string  `json:"unit"`
	GramsPerPerson float64 `json:"grams_per_person"`
	GramsPerGent   float64 `json:"grams_per_gent"`
	GramsPerLady   float64 `json:"grams_per_lady"`
	TotalGrams     float64 `json:"total_grams"`
	CostPerGent    string  `json:"cost_per_gent"`
	TotalCost      string  `json:"total_cost"`
}

// TotalsResponse is the aggregate summary attached to every calculation.
type TotalsResponse struct {
	FoodPerGentGrams      float64 `json:"food_per_gent_grams"`
	FoodPerLadyGrams      float64 `json:"food_per_lady_grams"`
	FoodPerPersonGrams    float64 `json:"food_per_person_grams"`
	ProteinPerPersonGrams float64 `json:"protein_per_person_grams"`
	TotalFoodWeightGrams  float64 `json:"total_food_weight_grams"`
	TotalCost             string  `json:"total_cost"`
}

// CalculateResponse is the body returned by POST /calculate and by the
// menu preview endpoint.
type CalculateResponse struct {
	Portions           []PortionResponse `json:"portions"`
	Totals             TotalsResponse    `json:"totals"`
	Warnings           []string          `json:"warnings"`
	AdjustmentsApplied []string          `json:"adjustments_applied"`
	Source             string            `json:"source,omitempty"`
}

// ViolationResponse is one discrepancy the checker found.
type ViolationResponse struct {
	Type     string  `json:"type"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Pool     string  `json:"pool,omitempty"`
	Total    float64 `json:"total,omitempty"`
	Ceiling  float64 `json:"ceiling,omitempty"`
}

// ComparisonEntry compares one dish's user-entered grams to what the
// engine would have computed.
type ComparisonEntry struct {
	DishID      int64   `json:"dish_id"`
	DishName    string  `json:"dish_name"`
	Category    string  `json:"category"`
	Pool        string  `json:"pool"`
	Unit        string  `json:"unit"`
	UserGrams   float64 `json:"user_grams"`
	EngineGrams float64 `json:"engine_grams"`
	DeltaGrams   float64 `json:"delta_grams"`
	DeltaPercent float64 `json:"delta_percent"`
}

// CheckPortionsResponse is the body returned by POST /check-portions.
type CheckPortionsResponse struct {
	Violations           []ViolationResponse `json:"violations"`
	UserPortionsExpanded []PortionResponse   `json:"user_portions_expanded"`
	EnginePortions       []PortionResponse   `json:"engine_portions"`
	Comparison           []ComparisonEntry   `json:"comparison"`
	UserTotals           TotalsResponse      `json:"user_totals"`
	EngineTotals         TotalsResponse      `json:"engine_totals"`
}

// PriceBreakdownResponse is one dish-level addition or removal
// adjustment in a price-check response.
type PriceBreakdownResponse struct {
	Dish     string `json:"dish"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Amount   string `json:"amount"`
}

// PriceCheckResponse is the body returned by POST /menus/{id}/price-check.
type PriceCheckResponse struct {
	TierPrice       string                   `json:"tier_price"`
	TierLabel       string                   `json:"tier_label"`
	Breakdown       []PriceBreakdownResponse `json:"breakdown"`
	TotalAdjustment string                   `json:"total_adjustment"`
	AdjustedPrice   string                   `json:"adjusted_price"`
}

package application

import (
	"context"
	"time"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// CalculationAudited is the durable audit event recorded for every
// calculation performed, independent of the in-response adjustments
// list, so operators can reconstruct what the engine decided after
// the fact.
type CalculationAudited struct {
	RequestID          string
	OccurredAt         time.Time
	DishIDs            []int64
	GuestMix           domain.GuestMix
	Warnings           []string
	AdjustmentsApplied []string
}

// AuditPublisher durably records calculation audit events. A
// publisher failure must never fail the calculation it's recording;
// callers log and continue.
type AuditPublisher interface {
	PublishCalculation(ctx context.Context, event CalculationAudited) error
}

// Package messaging provides the audit-trail adapter that records
// every calculation performed, independent of the response body.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/pkg/logger"
)

const auditTopic = "portioning.audits"

// auditEnvelope is the wire shape written to Kafka; it exists
// separately from application.CalculationAudited so the topic's
// schema doesn't move every time an internal field is renamed.
type auditEnvelope struct {
	RequestID          string   `json:"request_id"`
	OccurredAt         string   `json:"occurred_at"`
	DishIDs            []int64  `json:"dish_ids"`
	Gents              int      `json:"gents"`
	Ladies             int      `json:"ladies"`
	Warnings           []string `json:"warnings"`
	AdjustmentsApplied []string `json:"adjustments_applied"`
}

// KafkaAuditPublisher implements application.AuditPublisher by writing
// a JSON envelope for every calculation to the audit topic.
type KafkaAuditPublisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

// NewKafkaAuditPublisher returns a publisher whose writer targets
// brokers and the audit topic; no connection is opened until the first
// write. Writes are asynchronous: a broker outage slows
// nothing on the calculation request path.
func NewKafkaAuditPublisher(brokers []string, log *logger.Logger) *KafkaAuditPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        auditTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    50,
		Async:        true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error("kafka audit publisher: "+msg, args...)
		}),
	}
	return &KafkaAuditPublisher{writer: writer, logger: log}
}

// PublishCalculation implements application.AuditPublisher.
func (p *KafkaAuditPublisher) PublishCalculation(ctx context.Context, event application.CalculationAudited) error {
	envelope := auditEnvelope{
		RequestID:          event.RequestID,
		OccurredAt:         event.OccurredAt.Format(time.RFC3339Nano),
		DishIDs:            event.DishIDs,
		Gents:              event.GuestMix.Gents,
		Ladies:             event.GuestMix.Ladies,
		Warnings:           event.Warnings,
		AdjustmentsApplied: event.AdjustmentsApplied,
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshaling audit envelope: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RequestID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("writing audit message: %w", err)
	}
	return nil
}

// Close flushes any buffered messages and releases the writer's
// connection pool.
func (p *KafkaAuditPublisher) Close() error {
	return p.writer.Close()
}

var _ application.AuditPublisher = (*KafkaAuditPublisher)(nil)

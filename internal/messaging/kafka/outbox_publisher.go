package kafka

import (
	"context"
	"database/sql"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
)

// OutboxPublisher implements events.Publisher by staging events in the
// outbox table; the producer worker delivers them to Kafka afterwards.
type OutboxPublisher struct {
	repo OutboxRepository
}

func NewOutboxPublisher(repo OutboxRepository) *OutboxPublisher {
	return &OutboxPublisher{repo: repo}
}

func (p *OutboxPublisher) Publish(ctx context.Context, tx *sql.Tx, topic, key, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   key,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	repo := p.repo
	if tx != nil {
		repo = p.repo.WithTx(tx)
	}
	return repo.Create(ctx, event)
}

var _ events.Publisher = (*OutboxPublisher)(nil)

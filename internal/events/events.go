// Package events defines the messages the service emits to Kafka and
// the publisher contract backed by the transactional outbox.
package events

import (
	"context"
	"database/sql"
	"time"
)

const TopicEmployeeLifecycle = "payroll.employee.lifecycle.v1"

const EventTypeEmployeeCreated = "employee.created"

// Publisher stages an event for delivery. Implementations write to the
// outbox table on the caller's transaction so the event is published
// only if the surrounding business write commits.
type Publisher interface {
	Publish(ctx context.Context, tx *sql.Tx, topic, key, eventType string, payload any) error
}

type EmployeeCreated struct {
	EmployeeID  string    `json:"employee_id"`
	FullName    string    `json:"full_name"`
	JoiningDate string    `json:"joining_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

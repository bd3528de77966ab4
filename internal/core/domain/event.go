package domain

import (
	"time"

	"github.com/google/uuid"
)

// Domain event types published through the outbox.
const (
	EventEmployeeSubmitted      = "employee.submitted"
	EventEmployeeStageAdvanced  = "employee.stage_advanced"
	EventEmployeeRejected       = "employee.rejected"
	EventEmployeeVerified       = "employee.verified"
	EventEmployeeDeactivated    = "employee.deactivated"
	EventEmployeeManagerChanged = "employee.manager_changed"
	EventRoleAssigned           = "role.assigned"
	EventRoleRevoked            = "role.revoked"
)

// DomainEvent is an outbox record. It is inserted unpublished in the same
// transaction as the aggregate mutation that caused it and mutated only by the
// dispatcher (markPublished) or retention cleanup.
type DomainEvent struct {
	ID          string         `json:"id" bson:"_id"`
	EventType   string         `json:"event_type" bson:"event_type"`
	AggregateID string         `json:"aggregate_id" bson:"aggregate_id"`
	Data        map[string]any `json:"data" bson:"data"`
	OccurredAt  time.Time      `json:"occurred_at" bson:"occurred_at"`
	Version     int64          `json:"version" bson:"version"`
	Published   bool           `json:"published" bson:"published"`
	PublishedAt *time.Time     `json:"published_at,omitempty" bson:"published_at,omitempty"`
}

// NewDomainEvent builds an unpublished event for the given aggregate.
// Version records the aggregate version at emission time; pass 0 for
// aggregates without a version counter (role assignments).
func NewDomainEvent(eventType, aggregateID string, version int64, data map[string]any) *DomainEvent {
	return &DomainEvent{
		ID:          uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Data:        data,
		OccurredAt:  time.Now().UTC(),
		Version:     version,
	}
}

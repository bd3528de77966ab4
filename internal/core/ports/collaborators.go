package ports

import "context"

// TxRunner executes fn inside a storage transaction. Every repository call
// made with the ctx passed to fn joins that transaction; if fn returns an
// error the whole unit rolls back, including any outbox append.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventBus delivers a dispatched event to downstream consumers. A false return
// leaves the event unpublished in the outbox so the dispatcher retries it on
// the next poll (at-least-once delivery; consumers dedupe by event id).
type EventBus interface {
	Publish(ctx context.Context, eventType string, payload map[string]any) bool
}

// ProfileStatusSyncer is the Auth service's internal API for reconciling the
// profile-status field it keeps next to the identity record.
type ProfileStatusSyncer interface {
	UpdateProfileStatus(ctx context.Context, userID, status string) error
	GetProfileStatus(ctx context.Context, userID string) (string, error)
}

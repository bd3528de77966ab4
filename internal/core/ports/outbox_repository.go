package ports

import (
	"context"
	"time"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// OutboxRepository stores domain events durably. Append must be called inside
// the same transaction as the aggregate mutation that produced the event.
type OutboxRepository interface {
	Append(ctx context.Context, event *domain.DomainEvent) error
	// FetchUnpublished returns up to limit unpublished events, oldest first.
	FetchUnpublished(ctx context.Context, limit int) ([]*domain.DomainEvent, error)
	// MarkPublished is idempotent; marking an already-published event is a no-op.
	MarkPublished(ctx context.Context, eventID string, publishedAt time.Time) error
	// Cleanup hard-deletes published events older than the retention window and
	// returns the number removed. Maintenance only, never on the request path.
	Cleanup(ctx context.Context, olderThan time.Time) (int64, error)
}

// Package outbox contains the polling dispatcher that moves durably stored
// domain events from the outbox collection to downstream consumers.
package outbox

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/hr-workforce/internal/api/metrics"
	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultBatchSize    = 50
	defaultRetention    = 7 * 24 * time.Hour
	cleanupInterval     = time.Hour
)

// Options tunes the dispatcher. Zero values fall back to defaults.
type Options struct {
	PollInterval time.Duration
	BatchSize    int
	Retention    time.Duration
}

// Dispatcher polls the outbox for unpublished events and delivers them,
// oldest first, through the event bus. Delivery is at-least-once: an event is
// marked published only after the bus accepted it, so a crash between the two
// steps redelivers on restart. A failed publish stops the batch, keeping
// per-aggregate ordering intact across retries.
type Dispatcher struct {
	repo ports.OutboxRepository
	bus  ports.EventBus
	log  zerolog.Logger

	pollInterval time.Duration
	batchSize    int
	retention    time.Duration
}

func NewDispatcher(repo ports.OutboxRepository, bus ports.EventBus, opts Options, log zerolog.Logger) *Dispatcher {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Retention <= 0 {
		opts.Retention = defaultRetention
	}
	return &Dispatcher{
		repo:         repo,
		bus:          bus,
		log:          log,
		pollInterval: opts.PollInterval,
		batchSize:    opts.BatchSize,
		retention:    opts.Retention,
	}
}

// Start launches the poll and cleanup loops. Both stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.runPoll(ctx)
	go d.runCleanup(ctx)
}

func (d *Dispatcher) runPoll(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	d.log.Info().
		Dur("poll_interval", d.pollInterval).
		Int("batch_size", d.batchSize).
		Msg("outbox dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("outbox dispatcher stopped")
			return
		case <-ticker.C:
			d.DispatchPending(ctx)
		}
	}
}

// DispatchPending runs a single poll cycle and returns how many events were
// published. Exposed so operators can trigger a drain outside the ticker.
func (d *Dispatcher) DispatchPending(ctx context.Context) int {
	events, err := d.repo.FetchUnpublished(ctx, d.batchSize)
	if err != nil {
		d.log.Error().Err(err).Msg("failed to fetch unpublished events")
		return 0
	}
	metrics.OutboxBatchSize.Observe(float64(len(events)))
	if len(events) == 0 {
		return 0
	}

	published := 0
	for _, event := range events {
		if !d.bus.Publish(ctx, event.EventType, envelope(event)) {
			metrics.OutboxPublishErrorsTotal.WithLabelValues(event.EventType).Inc()
			d.log.Warn().
				Str("event_id", event.ID).
				Str("event_type", event.EventType).
				Msg("publish failed, batch stopped until next poll")
			break
		}
		if err := d.repo.MarkPublished(ctx, event.ID, time.Now().UTC()); err != nil {
			d.log.Error().Err(err).Str("event_id", event.ID).Msg("failed to mark event published")
			break
		}
		metrics.OutboxPublishedTotal.WithLabelValues(event.EventType).Inc()
		published++
	}

	if published > 0 {
		d.log.Debug().Int("published", published).Int("fetched", len(events)).Msg("outbox batch dispatched")
	}
	return published
}

func (d *Dispatcher) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := d.repo.Cleanup(ctx, time.Now().UTC().Add(-d.retention))
			if err != nil {
				d.log.Error().Err(err).Msg("outbox cleanup failed")
				continue
			}
			if deleted > 0 {
				metrics.OutboxCleanupDeletedTotal.Add(float64(deleted))
				d.log.Info().Int64("deleted", deleted).Msg("outbox retention cleanup")
			}
		}
	}
}

// envelope builds the wire payload for an event: the event data plus the
// metadata consumers need for dedup and ordering.
func envelope(event *domain.DomainEvent) map[string]any {
	payload := make(map[string]any, len(event.Data)+4)
	for k, v := range event.Data {
		payload[k] = v
	}
	payload["event_id"] = event.ID
	payload["aggregate_id"] = event.AggregateID
	payload["occurred_at"] = event.OccurredAt.Format(time.RFC3339Nano)
	// Role assignments carry no version counter; only versioned aggregates
	// stamp aggregate_version on the wire.
	if event.Version > 0 {
		payload["aggregate_version"] = event.Version
	}
	return payload
}

package bus

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const channelPrefix = "hr.events."

// RedisBus publishes domain events on Redis pub/sub channels, one channel per
// event type (hr.events.<event_type>). A failed publish returns false so the
// dispatcher retries the event on its next poll.
type RedisBus struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisBus(client *redis.Client, log zerolog.Logger) *RedisBus {
	return &RedisBus{client: client, log: log}
}

func (b *RedisBus) Publish(ctx context.Context, eventType string, payload map[string]any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		b.log.Error().Err(err).Str("event_type", eventType).Msg("failed to encode event payload")
		return false
	}
	if err := b.client.Publish(ctx, channelPrefix+eventType, body).Err(); err != nil {
		b.log.Warn().Err(err).Str("event_type", eventType).Msg("event publish failed, will retry")
		return false
	}
	return true
}

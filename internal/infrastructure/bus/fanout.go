package bus

import (
	"context"

	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// Fanout delivers each event to every underlying bus. Publish succeeds only
// when all targets accept the event; a partial failure keeps the event
// unpublished so the dispatcher retries all targets (each must dedupe by
// event id).
type Fanout struct {
	targets []ports.EventBus
}

func NewFanout(targets ...ports.EventBus) *Fanout {
	return &Fanout{targets: targets}
}

func (f *Fanout) Publish(ctx context.Context, eventType string, payload map[string]any) bool {
	ok := true
	for _, t := range f.targets {
		if !t.Publish(ctx, eventType, payload) {
			ok = false
		}
	}
	return ok
}

package bus

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// EventDeduper guards at-least-once delivery with event-id idempotency checks.
type EventDeduper interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// profileStatusByEvent maps verification events to the profile status the Auth
// service keeps next to its identity record.
var profileStatusByEvent = map[string]string{
	domain.EventEmployeeVerified:    "verified",
	domain.EventEmployeeRejected:    "rejected",
	domain.EventEmployeeDeactivated: "deactivated",
}

// AuthSyncPublisher translates profile-status events into updateProfileStatus
// calls on the Auth service. Events that carry no status change pass through
// untouched. Duplicates (redeliveries after a crash or partial fanout failure)
// are skipped via the dedup store.
type AuthSyncPublisher struct {
	syncer ports.ProfileStatusSyncer
	dedup  EventDeduper
	log    zerolog.Logger
}

func NewAuthSyncPublisher(syncer ports.ProfileStatusSyncer, dedup EventDeduper, log zerolog.Logger) *AuthSyncPublisher {
	return &AuthSyncPublisher{syncer: syncer, dedup: dedup, log: log}
}

func (p *AuthSyncPublisher) Publish(ctx context.Context, eventType string, payload map[string]any) bool {
	status, ok := profileStatusByEvent[eventType]
	if !ok {
		return true
	}

	userID, _ := payload["user_id"].(string)
	if userID == "" {
		// Nothing to sync for employees not yet linked to an identity.
		return true
	}

	eventID, _ := payload["event_id"].(string)
	if eventID != "" {
		isDup, err := p.dedup.IsDuplicate(ctx, eventID)
		if err != nil {
			p.log.Warn().Err(err).Str("event_id", eventID).Msg("dedup check failed, syncing anyway")
		} else if isDup {
			p.log.Debug().Str("event_id", eventID).Msg("duplicate status sync skipped")
			return true
		}
	}

	if err := p.syncer.UpdateProfileStatus(ctx, userID, status); err != nil {
		p.log.Warn().Err(err).
			Str("user_id", userID).
			Str("status", status).
			Msg("profile status sync failed, will retry")
		return false
	}

	if eventID != "" {
		if err := p.dedup.Mark(ctx, eventID); err != nil {
			p.log.Warn().Err(err).Str("event_id", eventID).Msg("failed to set dedup key")
		}
	}

	p.log.Info().Str("user_id", userID).Str("status", status).Msg("profile status synced to auth service")
	return true
}

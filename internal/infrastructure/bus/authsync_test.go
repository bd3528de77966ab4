package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

type stubSyncer struct {
	calls []string // "userID:status"
	err   error
}

func (s *stubSyncer) UpdateProfileStatus(ctx context.Context, userID, status string) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, userID+":"+status)
	return nil
}

func (s *stubSyncer) GetProfileStatus(ctx context.Context, userID string) (string, error) {
	return "", nil
}

type memDedup struct {
	seen map[string]bool
}

func newMemDedup() *memDedup {
	return &memDedup{seen: map[string]bool{}}
}

func (d *memDedup) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	return d.seen[eventID], nil
}

func (d *memDedup) Mark(ctx context.Context, eventID string) error {
	d.seen[eventID] = true
	return nil
}

func TestAuthSyncPublisherSyncsStatusEvents(t *testing.T) {
	syncer := &stubSyncer{}
	p := NewAuthSyncPublisher(syncer, newMemDedup(), zerolog.Nop())

	ok := p.Publish(context.Background(), domain.EventEmployeeVerified, map[string]any{
		"event_id": "evt-1",
		"user_id":  "user-1",
	})
	if !ok {
		t.Fatal("expected publish to succeed")
	}
	if len(syncer.calls) != 1 || syncer.calls[0] != "user-1:verified" {
		t.Fatalf("unexpected sync calls: %v", syncer.calls)
	}
}

func TestAuthSyncPublisherIgnoresNonStatusEvents(t *testing.T) {
	syncer := &stubSyncer{}
	p := NewAuthSyncPublisher(syncer, newMemDedup(), zerolog.Nop())

	ok := p.Publish(context.Background(), domain.EventEmployeeStageAdvanced, map[string]any{
		"event_id": "evt-1",
		"user_id":  "user-1",
	})
	if !ok {
		t.Fatal("expected pass-through to succeed")
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("non-status event must not sync: %v", syncer.calls)
	}
}

func TestAuthSyncPublisherSkipsDuplicates(t *testing.T) {
	syncer := &stubSyncer{}
	dedup := newMemDedup()
	p := NewAuthSyncPublisher(syncer, dedup, zerolog.Nop())

	payload := map[string]any{"event_id": "evt-1", "user_id": "user-1"}
	p.Publish(context.Background(), domain.EventEmployeeRejected, payload)
	p.Publish(context.Background(), domain.EventEmployeeRejected, payload)

	if len(syncer.calls) != 1 {
		t.Fatalf("expected a single sync, got %d", len(syncer.calls))
	}
}

func TestAuthSyncPublisherReportsFailureForRetry(t *testing.T) {
	syncer := &stubSyncer{err: errors.New("auth service down")}
	dedup := newMemDedup()
	p := NewAuthSyncPublisher(syncer, dedup, zerolog.Nop())

	ok := p.Publish(context.Background(), domain.EventEmployeeDeactivated, map[string]any{
		"event_id": "evt-1",
		"user_id":  "user-1",
	})
	if ok {
		t.Fatal("expected publish to fail so the dispatcher retries")
	}
	if dedup.seen["evt-1"] {
		t.Fatal("failed sync must not mark the event as processed")
	}
}

func TestAuthSyncPublisherSkipsUnlinkedEmployees(t *testing.T) {
	syncer := &stubSyncer{}
	p := NewAuthSyncPublisher(syncer, newMemDedup(), zerolog.Nop())

	ok := p.Publish(context.Background(), domain.EventEmployeeVerified, map[string]any{
		"event_id": "evt-1",
	})
	if !ok {
		t.Fatal("events without a linked user pass through")
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("unexpected sync calls: %v", syncer.calls)
	}
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubEmployeeRepo struct {
	byID      map[string]*domain.Employee
	createErr error
	updateErr error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byID: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) put(e *domain.Employee) {
	clone := *e
	r.byID[e.ID] = &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == e.Email {
			return domain.ErrEmployeeExists
		}
	}
	r.put(e)
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) FindByUserID(_ context.Context, userID string) (*domain.Employee, error) {
	for _, e := range r.byID {
		if e.UserID == userID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

// Update mirrors the real Mongo repo: the write only lands when the stored
// version still equals expectedVersion.
func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee, expectedVersion int64) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.byID[e.ID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	r.put(e)
	return nil
}

func (r *stubEmployeeRepo) List(_ context.Context, f ports.ListEmployeesFilter) ([]*domain.Employee, int64, error) {
	var matched []*domain.Employee
	for _, e := range r.byID {
		if f.ManagerID != "" && e.ManagerID != f.ManagerID {
			continue
		}
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		if f.VerificationStatus != "" && string(e.VerificationStatus) != f.VerificationStatus {
			continue
		}
		if f.EmploymentStatus != "" && string(e.EmploymentStatus) != f.EmploymentStatus {
			continue
		}
		clone := *e
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

type stubRoleRepo struct {
	assignments []*domain.RoleAssignment
	insertErr   error
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{}
}

func (r *stubRoleRepo) Insert(_ context.Context, a *domain.RoleAssignment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *a
	r.assignments = append(r.assignments, &clone)
	return nil
}

func (r *stubRoleRepo) FindActiveByUser(_ context.Context, userID string) ([]*domain.RoleAssignment, error) {
	var active []*domain.RoleAssignment
	for _, a := range r.assignments {
		if a.UserID == userID && a.IsActive {
			clone := *a
			active = append(active, &clone)
		}
	}
	return active, nil
}

func (r *stubRoleRepo) FindActiveByUserAndRole(_ context.Context, userID string, role domain.RoleCode) (*domain.RoleAssignment, error) {
	for _, a := range r.assignments {
		if a.UserID == userID && a.RoleCode == role && a.IsActive {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubRoleRepo) RevokeAllActive(_ context.Context, userID string, revokedAt time.Time) ([]*domain.RoleAssignment, error) {
	var revoked []*domain.RoleAssignment
	for _, a := range r.assignments {
		if a.UserID == userID && a.IsActive {
			a.IsActive = false
			ts := revokedAt
			a.RevokedAt = &ts
			clone := *a
			revoked = append(revoked, &clone)
		}
	}
	return revoked, nil
}

func (r *stubRoleRepo) Revoke(_ context.Context, id string, revokedAt time.Time) error {
	for _, a := range r.assignments {
		if a.ID == id && a.IsActive {
			a.IsActive = false
			ts := revokedAt
			a.RevokedAt = &ts
			return nil
		}
	}
	return domain.ErrRoleNotAssigned
}

type stubOutbox struct {
	events    []*domain.DomainEvent
	appendErr error
}

func newStubOutbox() *stubOutbox {
	return &stubOutbox{}
}

func (o *stubOutbox) Append(_ context.Context, event *domain.DomainEvent) error {
	if o.appendErr != nil {
		return o.appendErr
	}
	clone := *event
	o.events = append(o.events, &clone)
	return nil
}

func (o *stubOutbox) FetchUnpublished(_ context.Context, limit int) ([]*domain.DomainEvent, error) {
	var pending []*domain.DomainEvent
	for _, e := range o.events {
		if !e.Published {
			pending = append(pending, e)
			if len(pending) == limit {
				break
			}
		}
	}
	return pending, nil
}

func (o *stubOutbox) MarkPublished(_ context.Context, eventID string, publishedAt time.Time) error {
	for _, e := range o.events {
		if e.ID == eventID {
			e.Published = true
			ts := publishedAt
			e.PublishedAt = &ts
		}
	}
	return nil
}

func (o *stubOutbox) Cleanup(_ context.Context, olderThan time.Time) (int64, error) {
	var kept []*domain.DomainEvent
	var removed int64
	for _, e := range o.events {
		if e.Published && e.OccurredAt.Before(olderThan) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	o.events = kept
	return removed, nil
}

func (o *stubOutbox) byType(eventType string) []*domain.DomainEvent {
	var out []*domain.DomainEvent
	for _, e := range o.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// nopTx runs the unit of work without transactional guarantees; the stubs
// apply writes immediately, which is enough for service-level assertions.
type nopTx struct{}

func (nopTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Claims helpers
// ---------------------------------------------------------------------------

func adminClaims(userID string) ports.TokenClaims {
	return ports.TokenClaims{UserID: userID, Roles: []string{string(domain.RoleAdmin)}}
}

func managerClaims(userID string) ports.TokenClaims {
	return ports.TokenClaims{UserID: userID, Roles: []string{string(domain.RoleManager)}}
}

func employeeClaims(userID string) ports.TokenClaims {
	return ports.TokenClaims{UserID: userID, Roles: []string{string(domain.RoleEmployee)}}
}

func activeEmployee(id, userID string) *domain.Employee {
	now := time.Now().UTC()
	return &domain.Employee{
		ID:                 id,
		UserID:             userID,
		Email:              userID + "@example.com",
		FullName:           "Test Person",
		EmploymentStatus:   domain.EmploymentActive,
		VerificationStatus: domain.VerificationNotSubmitted,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

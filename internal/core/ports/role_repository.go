package ports

import (
	"context"
	"time"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// RoleAssignmentRepository defines persistence for role assignments. The
// revoke-then-insert sequence used by the role service must run inside one
// transaction (see TxRunner) so the single-active-role invariant never has a
// window with zero or two active roles.
type RoleAssignmentRepository interface {
	Insert(ctx context.Context, a *domain.RoleAssignment) error
	// FindActiveByUser returns all assignments with is_active=true for the user.
	FindActiveByUser(ctx context.Context, userID string) ([]*domain.RoleAssignment, error)
	FindActiveByUserAndRole(ctx context.Context, userID string, role domain.RoleCode) (*domain.RoleAssignment, error)
	// RevokeAllActive deactivates every active assignment of the user and
	// returns the assignments that were revoked.
	RevokeAllActive(ctx context.Context, userID string, revokedAt time.Time) ([]*domain.RoleAssignment, error)
	// Revoke deactivates a single assignment. Returns domain.ErrRoleNotAssigned
	// when it is missing or already inactive.
	Revoke(ctx context.Context, id string, revokedAt time.Time) error
}

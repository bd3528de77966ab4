package ports

import (
	"context"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// AssignRoleInput carries the parameters of a role assignment.
type AssignRoleInput struct {
	UserID   string
	RoleCode string
	Scope    map[string]string
}

// RoleService enforces the single-active-role invariant: assigning any role
// other than NEWCOMER atomically revokes all of the user's active assignments
// inside the same transaction as the new assignment.
type RoleService interface {
	AssignRole(ctx context.Context, claims TokenClaims, input AssignRoleInput) (*domain.RoleAssignment, error)
	RevokeRole(ctx context.Context, claims TokenClaims, userID, roleCode string) error
	HasRole(ctx context.Context, userID string, role domain.RoleCode) (bool, error)
	GetUserRoles(ctx context.Context, userID string) ([]*domain.RoleAssignment, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
	IsManager(ctx context.Context, userID string) (bool, error)
}

package domain

import (
	"errors"
	"time"
)

// RoleCode identifies one of the fixed platform roles.
type RoleCode string

const (
	RoleAdmin    RoleCode = "admin"
	RoleManager  RoleCode = "manager"
	RoleEmployee RoleCode = "employee"
	RoleNewcomer RoleCode = "newcomer"
)

var (
	ErrInvalidRoleCode     = errors.New("invalid role code")
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
	ErrRoleNotAssigned     = errors.New("role not assigned")
)

// Permission is a named capability carried by a role. The mapping below is
// declarative documentation of what each role grants; runtime access decisions
// are made by the authorization gate, never by looking these up.
type Permission string

const (
	PermManageRoles     Permission = "roles:manage"
	PermReviewProfiles  Permission = "profiles:review"
	PermViewAllProfiles Permission = "profiles:view_all"
	PermViewTeam        Permission = "profiles:view_team"
	PermViewSelf        Permission = "profiles:view_self"
	PermSubmitProfile   Permission = "profiles:submit"
)

// RolePermissions documents the static capability set of each role.
var RolePermissions = map[RoleCode][]Permission{
	RoleAdmin:    {PermManageRoles, PermReviewProfiles, PermViewAllProfiles},
	RoleManager:  {PermViewTeam, PermViewSelf},
	RoleEmployee: {PermViewSelf},
	RoleNewcomer: {PermViewSelf, PermSubmitProfile},
}

// ParseRoleCode validates a role string against the closed set.
func ParseRoleCode(s string) (RoleCode, error) {
	switch RoleCode(s) {
	case RoleAdmin, RoleManager, RoleEmployee, RoleNewcomer:
		return RoleCode(s), nil
	}
	return "", ErrInvalidRoleCode
}

// RoleAssignment links a user to a role. At most one assignment with
// IsActive=true may exist per user for any role other than NEWCOMER; assigning
// a non-NEWCOMER role revokes every prior active assignment in the same
// transaction.
type RoleAssignment struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	UserID     string            `json:"user_id" bson:"user_id"`
	RoleCode   RoleCode          `json:"role_code" bson:"role_code"`
	Scope      map[string]string `json:"scope,omitempty" bson:"scope,omitempty"` // reserved for department/project scoping
	AssignedBy string            `json:"assigned_by" bson:"assigned_by"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
	RevokedAt  *time.Time        `json:"revoked_at,omitempty" bson:"revoked_at,omitempty"`
	IsActive   bool              `json:"is_active" bson:"is_active"`
}

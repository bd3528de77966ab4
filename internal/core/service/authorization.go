package service

import (
	"context"
	"errors"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// AccessScope is the visibility level derived from token claims.
type AccessScope int

const (
	// ScopeAll grants unrestricted access to every employee record.
	ScopeAll AccessScope = iota
	// ScopeTeam restricts access to the caller's direct reports (and self).
	ScopeTeam
	// ScopeSelf restricts access to the caller's own employee record.
	ScopeSelf
)

// AuthorizationGate computes access decisions from verified token claims.
// The precedence is fixed and evaluated in order with short-circuit:
// ADMIN → unrestricted, MANAGER → direct reports, EMPLOYEE/NEWCOMER → self.
type AuthorizationGate struct {
	employees ports.EmployeeRepository
}

func NewAuthorizationGate(employees ports.EmployeeRepository) *AuthorizationGate {
	return &AuthorizationGate{employees: employees}
}

// ResolveScope maps the caller's role claims to an access scope.
func (g *AuthorizationGate) ResolveScope(claims ports.TokenClaims) AccessScope {
	if claims.HasRole(string(domain.RoleAdmin)) {
		return ScopeAll
	}
	if claims.HasRole(string(domain.RoleManager)) {
		return ScopeTeam
	}
	return ScopeSelf
}

// RequireAdmin fails with ErrForbidden unless the caller holds ADMIN.
func (g *AuthorizationGate) RequireAdmin(claims ports.TokenClaims) error {
	if !claims.HasRole(string(domain.RoleAdmin)) {
		return domain.ErrForbidden
	}
	return nil
}

// CanAccessEmployee decides whether the caller may view or act on target.
func (g *AuthorizationGate) CanAccessEmployee(ctx context.Context, claims ports.TokenClaims, target *domain.Employee) error {
	switch g.ResolveScope(claims) {
	case ScopeAll:
		return nil
	case ScopeTeam:
		if target.UserID != "" && target.UserID == claims.UserID {
			return nil
		}
		caller, err := g.employees.FindByUserID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrEmployeeNotFound) {
				return domain.ErrForbidden
			}
			return err
		}
		if target.ManagerID == caller.ID {
			return nil
		}
		return domain.ErrForbidden
	default:
		if target.UserID != "" && target.UserID == claims.UserID {
			return nil
		}
		return domain.ErrForbidden
	}
}

// NarrowListFilter applies the caller's access scope to a list filter.
func (g *AuthorizationGate) NarrowListFilter(ctx context.Context, claims ports.TokenClaims, filter *ports.ListEmployeesFilter) error {
	switch g.ResolveScope(claims) {
	case ScopeAll:
		return nil
	case ScopeTeam:
		caller, err := g.employees.FindByUserID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrEmployeeNotFound) {
				return domain.ErrForbidden
			}
			return err
		}
		filter.ManagerID = caller.ID
		return nil
	default:
		filter.UserID = claims.UserID
		return nil
	}
}

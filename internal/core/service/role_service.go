package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// RoleService manages role assignments under the single-active-role invariant:
// at most one non-NEWCOMER role is active per user at any time. The
// revoke-then-insert sequence runs inside one transaction together with the
// outbox appends, so no committed state ever shows zero or two active roles.
type RoleService struct {
	assignments ports.RoleAssignmentRepository
	outbox      ports.OutboxRepository
	tx          ports.TxRunner
	gate        *AuthorizationGate
	logger      zerolog.Logger
}

func NewRoleService(
	assignments ports.RoleAssignmentRepository,
	outbox ports.OutboxRepository,
	tx ports.TxRunner,
	gate *AuthorizationGate,
	logger zerolog.Logger,
) *RoleService {
	return &RoleService{
		assignments: assignments,
		outbox:      outbox,
		tx:          tx,
		gate:        gate,
		logger:      logger,
	}
}

// AssignRole grants a role to a user. Admin only. Assigning any role other
// than NEWCOMER first revokes every active assignment the user holds, emitting
// a role.revoked event per revocation followed by one role.assigned event.
func (s *RoleService) AssignRole(ctx context.Context, claims ports.TokenClaims, input ports.AssignRoleInput) (*domain.RoleAssignment, error) {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return nil, err
	}

	role, err := domain.ParseRoleCode(input.RoleCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment := &domain.RoleAssignment{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		RoleCode:   role,
		Scope:      input.Scope,
		AssignedBy: claims.UserID,
		CreatedAt:  now,
		IsActive:   true,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if role != domain.RoleNewcomer {
			revoked, err := s.assignments.RevokeAllActive(ctx, input.UserID, now)
			if err != nil {
				return err
			}
			for _, prev := range revoked {
				event := domain.NewDomainEvent(domain.EventRoleRevoked, input.UserID, 0, map[string]any{
					"user_id":    input.UserID,
					"role":       string(prev.RoleCode),
					"revoked_by": claims.UserID,
					"superseded": true,
				})
				if err := s.outbox.Append(ctx, event); err != nil {
					return err
				}
			}
		}

		// Defensive re-check against a concurrent assignment of the same role.
		existing, err := s.assignments.FindActiveByUserAndRole(ctx, input.UserID, role)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrRoleAlreadyAssigned
		}

		if err := s.assignments.Insert(ctx, assignment); err != nil {
			return err
		}

		event := domain.NewDomainEvent(domain.EventRoleAssigned, input.UserID, 0, map[string]any{
			"user_id":     input.UserID,
			"role":        string(role),
			"assigned_by": claims.UserID,
		})
		return s.outbox.Append(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", input.UserID).
		Str("role", string(role)).
		Str("assigned_by", claims.UserID).
		Msg("role assigned")
	return assignment, nil
}

// RevokeRole deactivates an active assignment. Admin only. Fails with
// ErrRoleNotAssigned when no active assignment exists, producing no event.
func (s *RoleService) RevokeRole(ctx context.Context, claims ports.TokenClaims, userID, roleCode string) error {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return err
	}

	role, err := domain.ParseRoleCode(roleCode)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.assignments.FindActiveByUserAndRole(ctx, userID, role)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrRoleNotAssigned
		}
		if err := s.assignments.Revoke(ctx, existing.ID, now); err != nil {
			return err
		}

		event := domain.NewDomainEvent(domain.EventRoleRevoked, userID, 0, map[string]any{
			"user_id":    userID,
			"role":       string(role),
			"revoked_by": claims.UserID,
		})
		return s.outbox.Append(ctx, event)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("role", roleCode).
		Str("revoked_by", claims.UserID).
		Msg("role revoked")
	return nil
}

// HasRole reports whether the user holds an active assignment for role.
func (s *RoleService) HasRole(ctx context.Context, userID string, role domain.RoleCode) (bool, error) {
	existing, err := s.assignments.FindActiveByUserAndRole(ctx, userID, role)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// GetUserRoles returns the user's active assignments only.
func (s *RoleService) GetUserRoles(ctx context.Context, userID string) ([]*domain.RoleAssignment, error) {
	return s.assignments.FindActiveByUser(ctx, userID)
}

// IsAdmin reports whether the user holds an active ADMIN assignment.
func (s *RoleService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.HasRole(ctx, userID, domain.RoleAdmin)
}

// IsManager reports whether the user holds an active MANAGER assignment.
func (s *RoleService) IsManager(ctx context.Context, userID string) (bool, error) {
	return s.HasRole(ctx, userID, domain.RoleManager)
}

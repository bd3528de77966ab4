package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// VerificationService drives the employee verification workflow. Each
// operation loads the aggregate, checks authorization, applies the state
// machine transition, then persists the aggregate and its domain event as one
// atomic unit through the transaction runner.
type VerificationService struct {
	employees ports.EmployeeRepository
	outbox    ports.OutboxRepository
	tx        ports.TxRunner
	gate      *AuthorizationGate
	logger    zerolog.Logger
}

func NewVerificationService(
	employees ports.EmployeeRepository,
	outbox ports.OutboxRepository,
	tx ports.TxRunner,
	gate *AuthorizationGate,
	logger zerolog.Logger,
) *VerificationService {
	return &VerificationService{
		employees: employees,
		outbox:    outbox,
		tx:        tx,
		gate:      gate,
		logger:    logger,
	}
}

// SubmitProfile moves a profile into review. Allowed for the employee themself
// or an admin; legal only from NOT_SUBMITTED or REJECTED.
func (s *VerificationService) SubmitProfile(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error) {
	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if claims.UserID != e.UserID {
		if err := s.gate.RequireAdmin(claims); err != nil {
			return nil, err
		}
	}

	expected := e.Version
	if err := e.Submit(time.Now().UTC()); err != nil {
		return nil, err
	}

	event := domain.NewDomainEvent(domain.EventEmployeeSubmitted, e.ID, e.Version, map[string]any{
		"employee_id":  e.ID,
		"user_id":      e.UserID,
		"status":       string(e.VerificationStatus),
		"submitted_by": claims.UserID,
	})
	if err := s.commit(ctx, e, expected, event); err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", e.ID).Str("submitted_by", claims.UserID).Msg("profile submitted for review")
	return e, nil
}

// AdvanceStage moves a profile exactly one review stage forward. Reviewer only.
func (s *VerificationService) AdvanceStage(ctx context.Context, claims ports.TokenClaims, input ports.AdvanceStageInput) (*domain.Employee, error) {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return nil, err
	}

	target := domain.VerificationStatus(input.TargetStatus)
	if !target.IsPending() {
		return nil, domain.ErrInvalidTransition
	}

	e, err := s.employees.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	from := e.VerificationStatus
	expected := e.Version
	if err := e.Advance(target, time.Now().UTC()); err != nil {
		return nil, err
	}

	event := domain.NewDomainEvent(domain.EventEmployeeStageAdvanced, e.ID, e.Version, map[string]any{
		"employee_id": e.ID,
		"from":        string(from),
		"to":          string(target),
		"reviewer_id": claims.UserID,
	})
	if err := s.commit(ctx, e, expected, event); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("employee_id", e.ID).
		Str("from", string(from)).
		Str("to", string(target)).
		Str("reviewer_id", claims.UserID).
		Msg("verification stage advanced")
	return e, nil
}

// RejectVerification fails a profile from any pending stage. Reviewer only.
func (s *VerificationService) RejectVerification(ctx context.Context, claims ports.TokenClaims, input ports.RejectInput) (*domain.Employee, error) {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return nil, err
	}

	e, err := s.employees.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	expected := e.Version
	if err := e.Reject(input.Reason, claims.UserID, time.Now().UTC()); err != nil {
		return nil, err
	}

	event := domain.NewDomainEvent(domain.EventEmployeeRejected, e.ID, e.Version, map[string]any{
		"employee_id": e.ID,
		"user_id":     e.UserID,
		"reason":      input.Reason,
		"rejected_by": claims.UserID,
	})
	if err := s.commit(ctx, e, expected, event); err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", e.ID).Str("reason", input.Reason).Msg("verification rejected")
	return e, nil
}

// FinalApprove completes the pipeline from PENDING_FINAL_APPROVAL. Reviewer only.
func (s *VerificationService) FinalApprove(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error) {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return nil, err
	}

	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	expected := e.Version
	if err := e.Approve(claims.UserID, time.Now().UTC()); err != nil {
		return nil, err
	}

	event := domain.NewDomainEvent(domain.EventEmployeeVerified, e.ID, e.Version, map[string]any{
		"employee_id": e.ID,
		"user_id":     e.UserID,
		"approved_by": claims.UserID,
	})
	if err := s.commit(ctx, e, expected, event); err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", e.ID).Str("approved_by", claims.UserID).Msg("employee verified")
	return e, nil
}

// commit writes the mutated aggregate and its event as one atomic unit. A
// version conflict aborts the transaction so neither write survives.
func (s *VerificationService) commit(ctx context.Context, e *domain.Employee, expectedVersion int64, event *domain.DomainEvent) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.employees.Update(ctx, e, expectedVersion); err != nil {
			return err
		}
		return s.outbox.Append(ctx, event)
	})
}

package ports

import (
	"context"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// AdvanceStageInput moves a profile one review stage forward.
type AdvanceStageInput struct {
	EmployeeID   string
	TargetStatus string
}

// RejectInput fails a verification with a mandatory reason.
type RejectInput struct {
	EmployeeID string
	Reason     string
}

// VerificationService drives the employee verification workflow. Every
// successful operation persists the aggregate and appends exactly one domain
// event to the outbox in the same transaction.
type VerificationService interface {
	SubmitProfile(ctx context.Context, claims TokenClaims, employeeID string) (*domain.Employee, error)
	AdvanceStage(ctx context.Context, claims TokenClaims, input AdvanceStageInput) (*domain.Employee, error)
	RejectVerification(ctx context.Context, claims TokenClaims, input RejectInput) (*domain.Employee, error)
	FinalApprove(ctx context.Context, claims TokenClaims, employeeID string) (*domain.Employee, error)
}

package domain

import (
	"errors"
	"time"
)

// VerificationStatus represents the stage of the employee verification pipeline.
type VerificationStatus string

const (
	VerificationNotSubmitted          VerificationStatus = "not_submitted"
	VerificationPendingDetailsReview  VerificationStatus = "pending_details_review"
	VerificationPendingDocsReview     VerificationStatus = "pending_documents_review"
	VerificationPendingRoleAssignment VerificationStatus = "pending_role_assignment"
	VerificationPendingFinalApproval  VerificationStatus = "pending_final_approval"
	VerificationVerified              VerificationStatus = "verified"
	VerificationRejected              VerificationStatus = "rejected"
)

// reviewStages lists the pending stages in required traversal order.
var reviewStages = []VerificationStatus{
	VerificationPendingDetailsReview,
	VerificationPendingDocsReview,
	VerificationPendingRoleAssignment,
	VerificationPendingFinalApproval,
}

// EmploymentStatus is the employment lifecycle flag, independent of verification.
type EmploymentStatus string

const (
	EmploymentActive   EmploymentStatus = "active"
	EmploymentInactive EmploymentStatus = "inactive"
)

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeExists    = errors.New("employee already exists")
	ErrInvalidTransition = errors.New("invalid verification transition")
	ErrVersionConflict   = errors.New("employee version conflict")
	ErrValidation        = errors.New("validation failed")
	ErrManagerCycle      = errors.New("manager assignment would create a cycle")
	ErrManagerInactive   = errors.New("manager must be an active employee")
	ErrForbidden         = errors.New("access forbidden")
)

// Employee is the aggregate root of the workforce service. All mutations go
// through the transition methods below so the verification invariants hold;
// Version increments on every successful transition and is the optimistic
// concurrency token.
type Employee struct {
	ID                 string             `json:"id" bson:"_id,omitempty"`
	UserID             string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Email              string             `json:"email" bson:"email"`
	FullName           string             `json:"full_name" bson:"full_name"`
	Phone              string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Title              string             `json:"title,omitempty" bson:"title,omitempty"`
	Department         string             `json:"department,omitempty" bson:"department,omitempty"`
	ManagerID          string             `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
	EmploymentStatus   EmploymentStatus   `json:"employment_status" bson:"employment_status"`
	VerificationStatus VerificationStatus `json:"verification_status" bson:"verification_status"`
	Version            int64              `json:"version" bson:"version"`

	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty" bson:"submitted_at,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty" bson:"rejected_at,omitempty"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty" bson:"deactivated_at,omitempty"`

	ApprovedBy         string `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	RejectionReason    string `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	RejectedBy         string `json:"rejected_by,omitempty" bson:"rejected_by,omitempty"`
	DeactivationReason string `json:"deactivation_reason,omitempty" bson:"deactivation_reason,omitempty"`
}

// NextStage returns the stage that follows s in the review pipeline, or ""
// when s is not a stage that can be advanced out of.
func (s VerificationStatus) NextStage() VerificationStatus {
	// PENDING_FINAL_APPROVAL is excluded: leaving it is Approve's job.
	for i := 0; i < len(reviewStages)-1; i++ {
		if reviewStages[i] == s {
			return reviewStages[i+1]
		}
	}
	return ""
}

// IsPending reports whether s is one of the four review stages.
func (s VerificationStatus) IsPending() bool {
	for _, stage := range reviewStages {
		if stage == s {
			return true
		}
	}
	return false
}

// CanResubmit reports whether the profile may be (re)submitted for review.
func (e *Employee) CanResubmit() bool {
	return e.VerificationStatus == VerificationNotSubmitted ||
		e.VerificationStatus == VerificationRejected
}

// Submit moves the profile into the first review stage. Legal only from
// NOT_SUBMITTED or REJECTED; a resubmission clears prior rejection metadata.
func (e *Employee) Submit(now time.Time) error {
	if !e.CanResubmit() {
		return ErrInvalidTransition
	}
	e.VerificationStatus = VerificationPendingDetailsReview
	e.SubmittedAt = &now
	e.RejectedAt = nil
	e.RejectionReason = ""
	e.RejectedBy = ""
	e.touch(now)
	return nil
}

// Advance moves the profile exactly one stage forward. Skipping stages,
// moving backward, or advancing out of PENDING_FINAL_APPROVAL is rejected.
func (e *Employee) Advance(target VerificationStatus, now time.Time) error {
	next := e.VerificationStatus.NextStage()
	if next == "" || target != next {
		return ErrInvalidTransition
	}
	e.VerificationStatus = target
	e.touch(now)
	return nil
}

// Reject fails the verification from any pending stage. The reason and
// rejecting actor are mandatory (REJECTED requires both to be set).
func (e *Employee) Reject(reason, rejectedBy string, now time.Time) error {
	if !e.VerificationStatus.IsPending() {
		return ErrInvalidTransition
	}
	if reason == "" || rejectedBy == "" {
		return ErrValidation
	}
	e.VerificationStatus = VerificationRejected
	e.RejectedAt = &now
	e.RejectionReason = reason
	e.RejectedBy = rejectedBy
	e.touch(now)
	return nil
}

// Approve completes the pipeline. Legal only from PENDING_FINAL_APPROVAL.
func (e *Employee) Approve(approvedBy string, now time.Time) error {
	if e.VerificationStatus != VerificationPendingFinalApproval {
		return ErrInvalidTransition
	}
	e.VerificationStatus = VerificationVerified
	e.ApprovedAt = &now
	e.ApprovedBy = approvedBy
	e.touch(now)
	return nil
}

// Deactivate marks the employee inactive. A reason is mandatory (INACTIVE
// requires a non-null deactivation timestamp and reason).
func (e *Employee) Deactivate(reason string, now time.Time) error {
	if reason == "" {
		return ErrValidation
	}
	if e.EmploymentStatus == EmploymentInactive {
		return ErrInvalidTransition
	}
	e.EmploymentStatus = EmploymentInactive
	e.DeactivatedAt = &now
	e.DeactivationReason = reason
	e.touch(now)
	return nil
}

// SetManager points the employee at a new manager. ACTIVE and cycle checks
// are the caller's responsibility (they require repository access).
func (e *Employee) SetManager(managerID string, now time.Time) error {
	if managerID == e.ID {
		return ErrManagerCycle
	}
	e.ManagerID = managerID
	e.touch(now)
	return nil
}

func (e *Employee) touch(now time.Time) {
	e.UpdatedAt = now
	e.Version++
}

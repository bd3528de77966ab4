package service

import (
	"context"
	"errors"
	"testing"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

func newVerificationService(repo *stubEmployeeRepo, outbox *stubOutbox) *VerificationService {
	return NewVerificationService(repo, outbox, nopTx{}, NewAuthorizationGate(repo), discardLogger)
}

func TestVerification_Submit_Success(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	repo.put(activeEmployee("emp_1", "user_1"))
	svc := newVerificationService(repo, outbox)

	e, err := svc.SubmitProfile(context.Background(), employeeClaims("user_1"), "emp_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.VerificationStatus != domain.VerificationPendingDetailsReview {
		t.Errorf("expected %q, got %q", domain.VerificationPendingDetailsReview, e.VerificationStatus)
	}
	if e.Version != 2 {
		t.Errorf("expected version 2, got %d", e.Version)
	}
	if len(outbox.events) != 1 || outbox.events[0].EventType != domain.EventEmployeeSubmitted {
		t.Fatalf("expected one employee.submitted event, got %+v", outbox.events)
	}
	if outbox.events[0].Published {
		t.Error("event must be appended unpublished")
	}
}

func TestVerification_Submit_ForbiddenForOtherUser(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	repo.put(activeEmployee("emp_1", "user_1"))
	svc := newVerificationService(repo, outbox)

	_, err := svc.SubmitProfile(context.Background(), employeeClaims("user_2"), "emp_1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(outbox.events) != 0 {
		t.Error("forbidden submit must produce no events")
	}
}

func TestVerification_Submit_AdminMaySubmitForAnyone(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	repo.put(activeEmployee("emp_1", "user_1"))
	svc := newVerificationService(repo, outbox)

	if _, err := svc.SubmitProfile(context.Background(), adminClaims("admin_1"), "emp_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerification_Submit_InvalidFromPending(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	e := activeEmployee("emp_1", "user_1")
	e.VerificationStatus = domain.VerificationPendingDocsReview
	repo.put(e)
	svc := newVerificationService(repo, outbox)

	_, err := svc.SubmitProfile(context.Background(), employeeClaims("user_1"), "emp_1")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(outbox.events) != 0 {
		t.Error("failed transition must produce no events")
	}
}

func TestVerification_Advance_RequiresAdmin(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	e := activeEmployee("emp_1", "user_1")
	e.VerificationStatus = domain.VerificationPendingDetailsReview
	repo.put(e)
	svc := newVerificationService(repo, outbox)

	_, err := svc.AdvanceStage(context.Background(), employeeClaims("user_1"), ports.AdvanceStageInput{
		EmployeeID:   "emp_1",
		TargetStatus: string(domain.VerificationPendingDocsReview),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVerification_Advance_SkipRejected(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	e := activeEmployee("emp_1", "user_1")
	e.VerificationStatus = domain.VerificationPendingDetailsReview
	repo.put(e)
	svc := newVerificationService(repo, outbox)

	_, err := svc.AdvanceStage(context.Background(), adminClaims("admin_1"), ports.AdvanceStageInput{
		EmployeeID:   "emp_1",
		TargetStatus: string(domain.VerificationPendingRoleAssignment),
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), "emp_1")
	if stored.VerificationStatus != domain.VerificationPendingDetailsReview || stored.Version != 1 {
		t.Error("state and version must be unchanged after failed advance")
	}
}

func TestVerification_Advance_UnknownTargetStatus(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	repo.put(activeEmployee("emp_1", "user_1"))
	svc := newVerificationService(repo, outbox)

	_, err := svc.AdvanceStage(context.Background(), adminClaims("admin_1"), ports.AdvanceStageInput{
		EmployeeID:   "emp_1",
		TargetStatus: "graduated",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVerification_Advance_OnVerifiedEmployee(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	e := activeEmployee("emp_1", "user_1")
	e.VerificationStatus = domain.VerificationVerified
	e.Version = 6
	repo.put(e)
	svc := newVerificationService(repo, outbox)

	_, err := svc.AdvanceStage(context.Background(), adminClaims("admin_1"), ports.AdvanceStageInput{
		EmployeeID:   "emp_1",
		TargetStatus: string(domain.VerificationPendingDetailsReview),
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), "emp_1")
	if stored.Version != 6 {
		t.Errorf("version must be unchanged, got %d", stored.Version)
	}
	if len(outbox.events) != 0 {
		t.Error("failed advance must produce no events")
	}
}

func TestVerification_Reject_StampsMetadataAndEvent(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	e := activeEmployee("emp_1", "user_1")
	e.VerificationStatus = domain.VerificationPendingDocsReview
	repo.put(e)
	svc := newVerificationService(repo, outbox)

	rejected, err := svc.RejectVerification(context.Background(), adminClaims("admin_1"), ports.RejectInput{
		EmployeeID: "emp_1",
		Reason:     "missing ID",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.VerificationStatus != domain.VerificationRejected {
		t.Errorf("expected rejected, got %q", rejected.VerificationStatus)
	}
	if rejected.RejectionReason != "missing ID" || rejected.RejectedBy != "admin_1" {
		t.Error("rejection metadata must be stamped")
	}
	if !rejected.CanResubmit() {
		t.Error("rejected profile must be resubmittable")
	}
	if len(outbox.byType(domain.EventEmployeeRejected)) != 1 {
		t.Fatalf("expected one employee.rejected event, got %+v", outbox.events)
	}
}

func TestVerification_Approve_OnlyFromFinalApproval(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	e := activeEmployee("emp_1", "user_1")
	e.VerificationStatus = domain.VerificationPendingDocsReview
	repo.put(e)
	svc := newVerificationService(repo, outbox)

	_, err := svc.FinalApprove(context.Background(), adminClaims("admin_1"), "emp_1")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVerification_VersionConflictSurfaced(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	e := activeEmployee("emp_1", "user_1")
	repo.put(e)
	svc := newVerificationService(repo, outbox)

	// Simulate a concurrent writer bumping the stored version after load.
	stored := repo.byID["emp_1"]
	stored.Version = 2

	_, err := svc.SubmitProfile(context.Background(), employeeClaims("user_1"), "emp_1")
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestVerification_UpdateFailureProducesNoEvent(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	repo.put(activeEmployee("emp_1", "user_1"))
	repo.updateErr = errors.New("db unavailable")
	svc := newVerificationService(repo, outbox)

	_, err := svc.SubmitProfile(context.Background(), employeeClaims("user_1"), "emp_1")
	if err == nil {
		t.Fatal("expected error when update fails")
	}
	if len(outbox.events) != 0 {
		t.Error("aborted mutation must produce zero events")
	}
}

func TestVerification_EndToEnd_HappyPath(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	repo.put(activeEmployee("emp_1", "user_1"))
	svc := newVerificationService(repo, outbox)
	ctx := context.Background()
	admin := adminClaims("admin_1")

	if _, err := svc.SubmitProfile(ctx, employeeClaims("user_1"), "emp_1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	for _, target := range []domain.VerificationStatus{
		domain.VerificationPendingDocsReview,
		domain.VerificationPendingRoleAssignment,
		domain.VerificationPendingFinalApproval,
	} {
		if _, err := svc.AdvanceStage(ctx, admin, ports.AdvanceStageInput{
			EmployeeID:   "emp_1",
			TargetStatus: string(target),
		}); err != nil {
			t.Fatalf("advance to %q: %v", target, err)
		}
	}
	final, err := svc.FinalApprove(ctx, admin, "emp_1")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if final.VerificationStatus != domain.VerificationVerified {
		t.Errorf("expected verified, got %q", final.VerificationStatus)
	}
	if final.Version != 6 {
		t.Errorf("expected version 6, got %d", final.Version)
	}
	if len(outbox.events) != 5 {
		t.Errorf("expected 5 events, got %d", len(outbox.events))
	}
}

func TestVerification_EndToEnd_SubmitThenReject(t *testing.T) {
	repo := newStubEmployeeRepo()
	outbox := newStubOutbox()
	repo.put(activeEmployee("emp_1", "user_1"))
	svc := newVerificationService(repo, outbox)
	ctx := context.Background()

	if _, err := svc.SubmitProfile(ctx, employeeClaims("user_1"), "emp_1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rejected, err := svc.RejectVerification(ctx, adminClaims("admin_1"), ports.RejectInput{
		EmployeeID: "emp_1",
		Reason:     "missing ID",
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	if rejected.VerificationStatus != domain.VerificationRejected {
		t.Errorf("expected rejected, got %q", rejected.VerificationStatus)
	}
	if rejected.RejectionReason != "missing ID" {
		t.Errorf("expected rejection reason set, got %q", rejected.RejectionReason)
	}
	if !rejected.CanResubmit() {
		t.Error("expected CanResubmit true after rejection")
	}
	if len(outbox.events) != 2 {
		t.Errorf("expected exactly 2 events, got %d", len(outbox.events))
	}
}

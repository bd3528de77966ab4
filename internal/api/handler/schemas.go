package handler

import (
	"time"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Employees ---

type createEmployeeRequest struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"      validate:"required,email"`
	FullName   string `json:"full_name"  validate:"required,min=2"`
	Phone      string `json:"phone"`
	Title      string `json:"title"`
	Department string `json:"department" validate:"required"`
	ManagerID  string `json:"manager_id"`
}

type deactivateEmployeeRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type changeManagerRequest struct {
	ManagerID string `json:"manager_id" validate:"required"`
}

// employeeResponse is the transport shape of an employee record. It is
// intentionally separate from the domain type so the JSON contract is not
// coupled to internal changes.
type employeeResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id,omitempty"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name"`
	Phone              string     `json:"phone,omitempty"`
	Title              string     `json:"title,omitempty"`
	Department         string     `json:"department,omitempty"`
	ManagerID          string     `json:"manager_id,omitempty"`
	EmploymentStatus   string     `json:"employment_status"`
	VerificationStatus string     `json:"verification_status"`
	Version            int64      `json:"version"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	SubmittedAt        *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	RejectedAt         *time.Time `json:"rejected_at,omitempty"`
	DeactivatedAt      *time.Time `json:"deactivated_at,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	DeactivationReason string     `json:"deactivation_reason,omitempty"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:                 e.ID,
		UserID:             e.UserID,
		Email:              e.Email,
		FullName:           e.FullName,
		Phone:              e.Phone,
		Title:              e.Title,
		Department:         e.Department,
		ManagerID:          e.ManagerID,
		EmploymentStatus:   string(e.EmploymentStatus),
		VerificationStatus: string(e.VerificationStatus),
		Version:            e.Version,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		SubmittedAt:        e.SubmittedAt,
		ApprovedAt:         e.ApprovedAt,
		RejectedAt:         e.RejectedAt,
		DeactivatedAt:      e.DeactivatedAt,
		RejectionReason:    e.RejectionReason,
		DeactivationReason: e.DeactivationReason,
	}
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listEmployeesResponse struct {
	Data       []employeeResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Verification ---

type advanceStageRequest struct {
	TargetStatus string `json:"target_status" validate:"required,oneof=pending_documents_review pending_role_assignment pending_final_approval"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type verificationStatusResponse struct {
	EmployeeID         string     `json:"employee_id"`
	VerificationStatus string     `json:"verification_status"`
	SubmittedAt        *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	RejectedAt         *time.Time `json:"rejected_at,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	CanResubmit        bool       `json:"can_resubmit"`
}

// --- Roles ---

type assignRoleRequest struct {
	RoleCode string            `json:"role_code" validate:"required,oneof=admin manager employee newcomer"`
	Scope    map[string]string `json:"scope,omitempty"`
}

type roleAssignmentResponse struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	RoleCode   string            `json:"role_code"`
	Scope      map[string]string `json:"scope,omitempty"`
	AssignedBy string            `json:"assigned_by"`
	CreatedAt  time.Time         `json:"created_at"`
	RevokedAt  *time.Time        `json:"revoked_at,omitempty"`
	IsActive   bool              `json:"is_active"`
}

func toRoleAssignmentResponse(a *domain.RoleAssignment) roleAssignmentResponse {
	return roleAssignmentResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		RoleCode:   string(a.RoleCode),
		Scope:      a.Scope,
		AssignedBy: a.AssignedBy,
		CreatedAt:  a.CreatedAt,
		RevokedAt:  a.RevokedAt,
		IsActive:   a.IsActive,
	}
}

type listRolesResponse struct {
	UserID string                   `json:"user_id"`
	Roles  []roleAssignmentResponse `json:"roles"`
}

// --- Internal ---

type internalStatusResponse struct {
	UserID             string `json:"user_id"`
	VerificationStatus string `json:"verification_status"`
}

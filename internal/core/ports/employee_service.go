package ports

import (
	"context"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// CreateEmployeeInput carries all data needed to create a new employee record.
type CreateEmployeeInput struct {
	UserID     string
	Email      string
	FullName   string
	Phone      string
	Title      string
	Department string
	ManagerID  string
}

// ListEmployeesInput carries the parameters of the list endpoint before
// access-scope narrowing.
type ListEmployeesInput struct {
	Department         string
	VerificationStatus string
	EmploymentStatus   string
	Page               int
	Limit              int
}

// ListEmployeesResult is a page of employees.
type ListEmployeesResult struct {
	Items      []*domain.Employee
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EmployeeService covers employee profile operations outside the verification
// pipeline. Reads are narrowed by the caller's access scope (admin → all,
// manager → direct reports, otherwise self).
type EmployeeService interface {
	CreateEmployee(ctx context.Context, claims TokenClaims, input CreateEmployeeInput) (*domain.Employee, error)
	GetEmployee(ctx context.Context, claims TokenClaims, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, claims TokenClaims, input ListEmployeesInput) (*ListEmployeesResult, error)
	DeactivateEmployee(ctx context.Context, claims TokenClaims, employeeID, reason string) (*domain.Employee, error)
	ChangeManager(ctx context.Context, claims TokenClaims, employeeID, managerID string) (*domain.Employee, error)
	// GetVerificationStatus is the internal lookup consumed by the Auth service.
	GetVerificationStatus(ctx context.Context, userID string) (domain.VerificationStatus, error)
}

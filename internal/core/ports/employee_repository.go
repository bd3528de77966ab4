package ports

import (
	"context"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// ListEmployeesFilter carries the query parameters for listing employees.
// ManagerID and UserID scoping are set by the service layer according to the
// caller's access scope, never by the transport layer directly.
type ListEmployeesFilter struct {
	ManagerID          string // non-empty = only direct reports of this employee
	UserID             string // non-empty = only the employee linked to this user
	Department         string // optional
	VerificationStatus string // optional
	EmploymentStatus   string // optional
	Page               int    // 1-based
	Limit              int    // capped at 100 by the service
}

// EmployeeRepository defines persistence operations for the Employee aggregate.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Employee, error)
	// Update persists the aggregate only if the stored version still equals
	// expectedVersion (optimistic lock). Returns domain.ErrVersionConflict when
	// a concurrent writer got there first.
	Update(ctx context.Context, e *domain.Employee, expectedVersion int64) error
	// List returns a page of employees matching filter and the total count.
	List(ctx context.Context, filter ListEmployeesFilter) ([]*domain.Employee, int64, error)
}

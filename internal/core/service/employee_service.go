package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

const maxListLimit = 100

// EmployeeService covers profile operations around the verification pipeline:
// creation, scoped reads, deactivation and manager changes.
type EmployeeService struct {
	employees ports.EmployeeRepository
	outbox    ports.OutboxRepository
	tx        ports.TxRunner
	gate      *AuthorizationGate
	logger    zerolog.Logger
}

func NewEmployeeService(
	employees ports.EmployeeRepository,
	outbox ports.OutboxRepository,
	tx ports.TxRunner,
	gate *AuthorizationGate,
	logger zerolog.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		outbox:    outbox,
		tx:        tx,
		gate:      gate,
		logger:    logger,
	}
}

// CreateEmployee registers a new employee record in NOT_SUBMITTED state.
// Admin only. Creation itself emits no domain event; events start with the
// first verification transition.
func (s *EmployeeService) CreateEmployee(ctx context.Context, claims ports.TokenClaims, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return nil, err
	}
	if input.Email == "" || input.FullName == "" {
		return nil, domain.ErrValidation
	}

	if input.ManagerID != "" {
		manager, err := s.employees.FindByID(ctx, input.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager.EmploymentStatus != domain.EmploymentActive {
			return nil, domain.ErrManagerInactive
		}
	}

	now := time.Now().UTC()
	e := &domain.Employee{
		ID:                 uuid.NewString(),
		UserID:             input.UserID,
		Email:              input.Email,
		FullName:           input.FullName,
		Phone:              input.Phone,
		Title:              input.Title,
		Department:         input.Department,
		ManagerID:          input.ManagerID,
		EmploymentStatus:   domain.EmploymentActive,
		VerificationStatus: domain.VerificationNotSubmitted,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.employees.Create(ctx, e); err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create employee")
		return nil, err
	}

	s.logger.Info().Str("employee_id", e.ID).Str("email", e.Email).Msg("employee created")
	return e, nil
}

// GetEmployee returns one employee, subject to the caller's access scope.
func (s *EmployeeService) GetEmployee(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error) {
	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CanAccessEmployee(ctx, claims, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListEmployees returns a page of employees visible to the caller.
func (s *EmployeeService) ListEmployees(ctx context.Context, claims ports.TokenClaims, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := ports.ListEmployeesFilter{
		Department:         input.Department,
		VerificationStatus: input.VerificationStatus,
		EmploymentStatus:   input.EmploymentStatus,
		Page:               page,
		Limit:              limit,
	}
	if err := s.gate.NarrowListFilter(ctx, claims, &filter); err != nil {
		return nil, err
	}

	items, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &ports.ListEmployeesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// DeactivateEmployee marks the employee INACTIVE with a mandatory reason.
// Admin only.
func (s *EmployeeService) DeactivateEmployee(ctx context.Context, claims ports.TokenClaims, employeeID, reason string) (*domain.Employee, error) {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return nil, err
	}

	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	expected := e.Version
	if err := e.Deactivate(reason, time.Now().UTC()); err != nil {
		return nil, err
	}

	event := domain.NewDomainEvent(domain.EventEmployeeDeactivated, e.ID, e.Version, map[string]any{
		"employee_id":    e.ID,
		"user_id":        e.UserID,
		"reason":         reason,
		"deactivated_by": claims.UserID,
	})
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.employees.Update(ctx, e, expected); err != nil {
			return err
		}
		return s.outbox.Append(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", e.ID).Str("reason", reason).Msg("employee deactivated")
	return e, nil
}

// ChangeManager points the employee at a new manager after validating the
// manager is ACTIVE and the assignment creates no cycle in the management
// tree. Admin only.
func (s *EmployeeService) ChangeManager(ctx context.Context, claims ports.TokenClaims, employeeID, managerID string) (*domain.Employee, error) {
	if err := s.gate.RequireAdmin(claims); err != nil {
		return nil, err
	}

	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if managerID != "" {
		manager, err := s.employees.FindByID(ctx, managerID)
		if err != nil {
			return nil, err
		}
		if manager.EmploymentStatus != domain.EmploymentActive {
			return nil, domain.ErrManagerInactive
		}
		if err := s.checkManagerCycle(ctx, e.ID, manager); err != nil {
			return nil, err
		}
	}

	expected := e.Version
	if err := e.SetManager(managerID, time.Now().UTC()); err != nil {
		return nil, err
	}

	event := domain.NewDomainEvent(domain.EventEmployeeManagerChanged, e.ID, e.Version, map[string]any{
		"employee_id": e.ID,
		"manager_id":  managerID,
		"changed_by":  claims.UserID,
	})
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.employees.Update(ctx, e, expected); err != nil {
			return err
		}
		return s.outbox.Append(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", e.ID).Str("manager_id", managerID).Msg("manager changed")
	return e, nil
}

// GetVerificationStatus is the internal lookup consumed by the Auth service.
func (s *EmployeeService) GetVerificationStatus(ctx context.Context, userID string) (domain.VerificationStatus, error) {
	e, err := s.employees.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return e.VerificationStatus, nil
}

// checkManagerCycle walks the candidate manager's ancestor chain upward. The
// walk is bounded by the visited set, so a pre-existing cycle cannot loop it
// forever; encountering employeeID means the assignment would close a cycle.
func (s *EmployeeService) checkManagerCycle(ctx context.Context, employeeID string, manager *domain.Employee) error {
	visited := map[string]struct{}{}
	current := manager
	for {
		if current.ID == employeeID {
			return domain.ErrManagerCycle
		}
		if current.ManagerID == "" {
			return nil
		}
		if _, seen := visited[current.ID]; seen {
			return domain.ErrManagerCycle
		}
		visited[current.ID] = struct{}{}

		next, err := s.employees.FindByID(ctx, current.ManagerID)
		if err != nil {
			if errors.Is(err, domain.ErrEmployeeNotFound) {
				return nil
			}
			return err
		}
		current = next
	}
}

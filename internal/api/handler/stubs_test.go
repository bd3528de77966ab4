package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/api/middleware"
	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// newContext builds an echo context with the validator installed and the
// request body bound to JSON.
func newContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setClaims(c echo.Context, userID string, roles ...string) {
	c.Set(middleware.ClaimsKey, ports.TokenClaims{UserID: userID, Roles: roles})
}

// --- Service stubs ---

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubEmployeeService struct {
	createFn     func(ctx context.Context, claims ports.TokenClaims, input ports.CreateEmployeeInput) (*domain.Employee, error)
	getFn        func(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error)
	listFn       func(ctx context.Context, claims ports.TokenClaims, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error)
	deactivateFn func(ctx context.Context, claims ports.TokenClaims, employeeID, reason string) (*domain.Employee, error)
	managerFn    func(ctx context.Context, claims ports.TokenClaims, employeeID, managerID string) (*domain.Employee, error)
	statusFn     func(ctx context.Context, userID string) (domain.VerificationStatus, error)
}

func (s *stubEmployeeService) CreateEmployee(ctx context.Context, claims ports.TokenClaims, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	return s.createFn(ctx, claims, input)
}

func (s *stubEmployeeService) GetEmployee(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error) {
	return s.getFn(ctx, claims, employeeID)
}

func (s *stubEmployeeService) ListEmployees(ctx context.Context, claims ports.TokenClaims, input ports.ListEmployeesInput) (*ports.ListEmployeesResult, error) {
	return s.listFn(ctx, claims, input)
}

func (s *stubEmployeeService) DeactivateEmployee(ctx context.Context, claims ports.TokenClaims, employeeID, reason string) (*domain.Employee, error) {
	return s.deactivateFn(ctx, claims, employeeID, reason)
}

func (s *stubEmployeeService) ChangeManager(ctx context.Context, claims ports.TokenClaims, employeeID, managerID string) (*domain.Employee, error) {
	return s.managerFn(ctx, claims, employeeID, managerID)
}

func (s *stubEmployeeService) GetVerificationStatus(ctx context.Context, userID string) (domain.VerificationStatus, error) {
	return s.statusFn(ctx, userID)
}

type stubVerificationService struct {
	submitFn  func(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error)
	advanceFn func(ctx context.Context, claims ports.TokenClaims, input ports.AdvanceStageInput) (*domain.Employee, error)
	rejectFn  func(ctx context.Context, claims ports.TokenClaims, input ports.RejectInput) (*domain.Employee, error)
	approveFn func(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error)
}

func (s *stubVerificationService) SubmitProfile(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error) {
	return s.submitFn(ctx, claims, employeeID)
}

func (s *stubVerificationService) AdvanceStage(ctx context.Context, claims ports.TokenClaims, input ports.AdvanceStageInput) (*domain.Employee, error) {
	return s.advanceFn(ctx, claims, input)
}

func (s *stubVerificationService) RejectVerification(ctx context.Context, claims ports.TokenClaims, input ports.RejectInput) (*domain.Employee, error) {
	return s.rejectFn(ctx, claims, input)
}

func (s *stubVerificationService) FinalApprove(ctx context.Context, claims ports.TokenClaims, employeeID string) (*domain.Employee, error) {
	return s.approveFn(ctx, claims, employeeID)
}

type stubRoleService struct {
	assignFn func(ctx context.Context, claims ports.TokenClaims, input ports.AssignRoleInput) (*domain.RoleAssignment, error)
	revokeFn func(ctx context.Context, claims ports.TokenClaims, userID, roleCode string) error
	rolesFn  func(ctx context.Context, userID string) ([]*domain.RoleAssignment, error)
}

func (s *stubRoleService) AssignRole(ctx context.Context, claims ports.TokenClaims, input ports.AssignRoleInput) (*domain.RoleAssignment, error) {
	return s.assignFn(ctx, claims, input)
}

func (s *stubRoleService) RevokeRole(ctx context.Context, claims ports.TokenClaims, userID, roleCode string) error {
	return s.revokeFn(ctx, claims, userID, roleCode)
}

func (s *stubRoleService) HasRole(ctx context.Context, userID string, role domain.RoleCode) (bool, error) {
	return false, nil
}

func (s *stubRoleService) GetUserRoles(ctx context.Context, userID string) ([]*domain.RoleAssignment, error) {
	return s.rolesFn(ctx, userID)
}

func (s *stubRoleService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

func (s *stubRoleService) IsManager(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

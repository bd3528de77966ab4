package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/api/metrics"
	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// VerificationHandler exposes the verification workflow over HTTP.
type VerificationHandler struct {
	verification ports.VerificationService
	employees    ports.EmployeeService
}

func NewVerificationHandler(verification ports.VerificationService, employees ports.EmployeeService) *VerificationHandler {
	return &VerificationHandler{verification: verification, employees: employees}
}

func transitionResponse(c echo.Context, e *domain.Employee) error {
	metrics.VerificationTransitionsTotal.WithLabelValues(string(e.VerificationStatus)).Inc()
	return c.JSON(http.StatusOK, toEmployeeResponse(e))
}

// Submit handles POST /v1/employees/:id/verification/submit. Employees submit
// their own profile; admins may submit on someone's behalf.
//
// @Summary      Submit a profile for verification
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/employees/{id}/verification/submit [post]
func (h *VerificationHandler) Submit(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employee, err := h.verification.SubmitProfile(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return transitionResponse(c, employee)
}

// Advance handles POST /v1/employees/:id/verification/advance. Reviewers move
// a profile exactly one stage forward; the target stage must be named
// explicitly so concurrent reviewers cannot double-advance.
//
// @Summary      Advance a verification one stage
// @Tags         verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Employee id"
// @Param        body  body      advanceStageRequest  true  "Target stage"
// @Success      200   {object}  employeeResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/employees/{id}/verification/advance [post]
func (h *VerificationHandler) Advance(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req advanceStageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.verification.AdvanceStage(c.Request().Context(), claims, ports.AdvanceStageInput{
		EmployeeID:   c.Param("id"),
		TargetStatus: req.TargetStatus,
	})
	if err != nil {
		return err
	}
	return transitionResponse(c, employee)
}

// Reject handles POST /v1/employees/:id/verification/reject.
//
// @Summary      Reject a verification
// @Tags         verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Employee id"
// @Param        body  body      rejectRequest  true  "Rejection reason"
// @Success      200   {object}  employeeResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/employees/{id}/verification/reject [post]
func (h *VerificationHandler) Reject(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.verification.RejectVerification(c.Request().Context(), claims, ports.RejectInput{
		EmployeeID: c.Param("id"),
		Reason:     req.Reason,
	})
	if err != nil {
		return err
	}
	return transitionResponse(c, employee)
}

// Approve handles POST /v1/employees/:id/verification/approve.
//
// @Summary      Final-approve a verification
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/employees/{id}/verification/approve [post]
func (h *VerificationHandler) Approve(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employee, err := h.verification.FinalApprove(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return transitionResponse(c, employee)
}

// Status handles GET /v1/employees/:id/verification. Visibility follows the
// same access scope as the employee record itself.
//
// @Summary      Get an employee's verification status
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  verificationStatusResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/employees/{id}/verification [get]
func (h *VerificationHandler) Status(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employee, err := h.employees.GetEmployee(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, verificationStatusResponse{
		EmployeeID:         employee.ID,
		VerificationStatus: string(employee.VerificationStatus),
		SubmittedAt:        employee.SubmittedAt,
		ApprovedAt:         employee.ApprovedAt,
		RejectedAt:         employee.RejectedAt,
		RejectionReason:    employee.RejectionReason,
		CanResubmit:        employee.CanResubmit(),
	})
}

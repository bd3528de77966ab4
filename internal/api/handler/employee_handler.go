package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/api/metrics"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee profile operations.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /v1/employees.
//
// @Summary      Create an employee record
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.CreateEmployee(c.Request().Context(), claims, ports.CreateEmployeeInput{
		UserID:     req.UserID,
		Email:      req.Email,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Title:      req.Title,
		Department: req.Department,
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		return err
	}

	metrics.EmployeesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// Get handles GET /v1/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	employee, err := h.service.GetEmployee(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// List handles GET /v1/employees. Results are narrowed to the caller's access
// scope before filters apply.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        department           query     string  false  "Filter by department"
// @Param        verification_status  query     string  false  "Filter by verification status"
// @Param        employment_status    query     string  false  "Filter by employment status"
// @Param        page                 query     int     false  "Page number (1-based)"
// @Param        limit                query     int     false  "Page size (max 100)"
// @Success      200  {object}  listEmployeesResponse
// @Router       /v1/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListEmployees(c.Request().Context(), claims, ports.ListEmployeesInput{
		Department:         c.QueryParam("department"),
		VerificationStatus: c.QueryParam("verification_status"),
		EmploymentStatus:   c.QueryParam("employment_status"),
		Page:               page,
		Limit:              limit,
	})
	if err != nil {
		return err
	}

	items := make([]employeeResponse, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, toEmployeeResponse(e))
	}

	return c.JSON(http.StatusOK, listEmployeesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Deactivate handles POST /v1/employees/:id/deactivate.
//
// @Summary      Deactivate an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Employee id"
// @Param        body  body      deactivateEmployeeRequest  true  "Deactivation reason"
// @Success      200   {object}  employeeResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/employees/{id}/deactivate [post]
func (h *EmployeeHandler) Deactivate(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req deactivateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.DeactivateEmployee(c.Request().Context(), claims, c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// ChangeManager handles PUT /v1/employees/:id/manager.
//
// @Summary      Change an employee's manager
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Employee id"
// @Param        body  body      changeManagerRequest  true  "New manager"
// @Success      200   {object}  employeeResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/employees/{id}/manager [put]
func (h *EmployeeHandler) ChangeManager(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changeManagerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.ChangeManager(c.Request().Context(), claims, c.Param("id"), req.ManagerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

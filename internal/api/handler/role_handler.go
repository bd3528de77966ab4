package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/api/metrics"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// RoleHandler exposes role management over HTTP. All routes require the admin
// role.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// Assign handles POST /v1/users/:user_id/roles. Assigning any role other than
// newcomer supersedes the user's current active assignments.
//
// @Summary      Assign a role to a user
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string             true  "User id"
// @Param        body     body      assignRoleRequest  true  "Role to assign"
// @Success      201      {object}  roleAssignmentResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /v1/users/{user_id}/roles [post]
func (h *RoleHandler) Assign(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.AssignRole(c.Request().Context(), claims, ports.AssignRoleInput{
		UserID:   c.Param("user_id"),
		RoleCode: req.RoleCode,
		Scope:    req.Scope,
	})
	if err != nil {
		return err
	}

	metrics.RoleAssignmentsTotal.WithLabelValues(string(assignment.RoleCode)).Inc()
	return c.JSON(http.StatusCreated, toRoleAssignmentResponse(assignment))
}

// Revoke handles DELETE /v1/users/:user_id/roles/:role_code.
//
// @Summary      Revoke a user's role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        user_id    path  string  true  "User id"
// @Param        role_code  path  string  true  "Role code"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{user_id}/roles/{role_code} [delete]
func (h *RoleHandler) Revoke(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.RevokeRole(c.Request().Context(), claims, c.Param("user_id"), c.Param("role_code")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/users/:user_id/roles, returning active assignments.
//
// @Summary      List a user's active roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  listRolesResponse
// @Failure      403      {object}  errorResponse
// @Router       /v1/users/{user_id}/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}

	userID := c.Param("user_id")
	assignments, err := h.service.GetUserRoles(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	roles := make([]roleAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		roles = append(roles, toRoleAssignmentResponse(a))
	}
	return c.JSON(http.StatusOK, listRolesResponse{UserID: userID, Roles: roles})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// InternalHandler serves the service-to-service API. Routes are protected by
// the ServiceAuth middleware, not user tokens.
type InternalHandler struct {
	employees ports.EmployeeService
}

func NewInternalHandler(employees ports.EmployeeService) *InternalHandler {
	return &InternalHandler{employees: employees}
}

// VerificationStatus handles GET /internal/v1/users/:user_id/verification-status,
// the lookup the Auth service uses to reconcile its profile-status copy.
func (h *InternalHandler) VerificationStatus(c echo.Context) error {
	userID := c.Param("user_id")

	status, err := h.employees.GetVerificationStatus(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, internalStatusResponse{
		UserID:             userID,
		VerificationStatus: string(status),
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/api/middleware"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// ctxClaims extracts the verified claims injected by the Auth middleware.
// Their presence proves the middleware ran; a handler reached without them is
// a routing mistake and gets a 401, not a panic.
func ctxClaims(c echo.Context) (ports.TokenClaims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(ports.TokenClaims)
	if !ok || claims.UserID == "" {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	headerServiceName  = "X-Service-Name"
	headerServiceToken = "X-Service-Token"
)

// ServiceAuth protects internal service-to-service routes. Callers must send
// X-Service-Name and X-Service-Token headers matching an entry in the
// configured allow-list. Tokens are compared in constant time.
func ServiceAuth(allowList map[string]string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			name := c.Request().Header.Get(headerServiceName)
			token := c.Request().Header.Get(headerServiceToken)
			if name == "" || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing service credentials")
			}

			want, ok := allowList[name]
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(want)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid service credentials")
			}

			c.Set("service_name", name)
			return next(c)
		}
	}
}

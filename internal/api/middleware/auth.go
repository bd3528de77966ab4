package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// ClaimsKey is the echo context key under which Auth stores the verified
// ports.TokenClaims.
const ClaimsKey = "claims"

// Auth validates the bearer JWT and injects the verified claims into context.
// The check fails closed: signature, expiry, audience, issuer and token_type
// must all pass before any handler runs.
func Auth(jwtSecret, audience, issuer string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			mapClaims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], mapClaims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			},
				jwt.WithAudience(audience),
				jwt.WithIssuer(issuer),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, err := claimsFromToken(mapClaims)
			if err != nil {
				return err
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// claimsFromToken maps verified jwt claims to the typed claims object the core
// consumes. A token without a user identity or with the wrong token_type is
// rejected even when its signature is valid.
func claimsFromToken(mc jwt.MapClaims) (ports.TokenClaims, error) {
	userID, _ := mc["user_id"].(string)
	if userID == "" {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	tokenType, _ := mc["token_type"].(string)
	if tokenType != "access" {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "wrong token type")
	}

	claims := ports.TokenClaims{
		UserID:    userID,
		TokenType: tokenType,
	}
	claims.Email, _ = mc["email"].(string)

	if rawRoles, ok := mc["roles"].([]any); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				claims.Roles = append(claims.Roles, role)
			}
		}
	}

	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if aud, err := mc.GetAudience(); err == nil && len(aud) > 0 {
		claims.Audience = aud[0]
	}
	if iss, err := mc.GetIssuer(); err == nil {
		claims.Issuer = iss
	}

	if !claims.ExpiresAt.After(time.Now()) {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "token expired")
	}

	return claims, nil
}

package ports

import "time"

// TokenClaims is the verified identity object injected by the JWT middleware.
// The core trusts it; signature, expiry, audience and issuer checks happen in
// the middleware, which fails closed before any use case runs.
type TokenClaims struct {
	UserID    string
	Email     string
	TokenType string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Audience  string
	Issuer    string
}

// HasRole reports whether the token carries the given role claim.
func (c TokenClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

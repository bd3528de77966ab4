package ports

import (
	"context"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
)

// AuthService implements account registration and login. Issued tokens carry
// the full claims shape (user_id, email, token_type, roles, aud, iss); roles
// are resolved from active assignments at login time.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

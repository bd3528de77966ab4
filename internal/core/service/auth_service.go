package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplecore/hr-workforce/internal/core/domain"
	"github.com/peoplecore/hr-workforce/internal/core/ports"
)

// AuthService implements registration and login. New accounts start with the
// NEWCOMER role; real roles are granted later through the role service. The
// user insert, the NEWCOMER assignment and its role.assigned outbox event
// commit in one transaction, so no account ever exists without a role.
type AuthService struct {
	repo        ports.AuthRepository
	assignments ports.RoleAssignmentRepository
	outbox      ports.OutboxRepository
	tx          ports.TxRunner
	jwtSecret   string
	tokenTTL    time.Duration
	issuer      string
	audience    string
}

func NewAuthService(
	repo ports.AuthRepository,
	assignments ports.RoleAssignmentRepository,
	outbox ports.OutboxRepository,
	tx ports.TxRunner,
	jwtSecret string,
	tokenTTL time.Duration,
	issuer string,
	audience string,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:        repo,
		assignments: assignments,
		outbox:      outbox,
		tx:          tx,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		issuer:      issuer,
		audience:    audience,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created *domain.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		created, err = s.repo.Create(ctx, user)
		if err != nil {
			return err
		}

		// Fresh accounts hold NEWCOMER until an admin assigns a real role.
		newcomer := &domain.RoleAssignment{
			ID:         uuid.NewString(),
			UserID:     created.ID,
			RoleCode:   domain.RoleNewcomer,
			AssignedBy: "system",
			CreatedAt:  now,
			IsActive:   true,
		}
		if err := s.assignments.Insert(ctx, newcomer); err != nil {
			return err
		}

		event := domain.NewDomainEvent(domain.EventRoleAssigned, created.ID, 0, map[string]any{
			"user_id":     created.ID,
			"role":        string(domain.RoleNewcomer),
			"assigned_by": "system",
		})
		return s.outbox.Append(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	assignments, err := s.assignments.FindActiveByUser(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	roles := make([]string, 0, len(assignments))
	for _, a := range assignments {
		roles = append(roles, string(a.RoleCode))
	}

	token, err := s.generateToken(user, roles)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"token_type": "access",
		"roles":      roles,
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
		"aud":        s.audience,
		"iss":        s.issuer,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/ports"
)

// AuthService implements registration and login against the account
// repository. It only establishes who the principal is; binding that
// principal to the session is the caller's job.
type AuthService struct {
	repo ports.AuthRepository
	log  zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, password, name, role string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(name) == "" {
		name = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         r,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("account registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account.Principal(), nil
}

// EnsureAdmin registers an admin account under username unless one already
// exists. A blank username or password disables seeding.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, name string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	_, err = s.Register(ctx, username, password, name, string(domain.RoleAdmin))
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}

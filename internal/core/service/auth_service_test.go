package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockflow/dashboard/internal/core/domain"
)

type stubAuthRepo struct {
	accounts map[string]*domain.Account
	findErr  error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.accounts[account.Username] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(a), nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	account, err := svc.Register(context.Background(), "ada", "pass123", "Ada Lovelace", "admin")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID == "" {
		t.Fatalf("expected generated id")
	}
	if account.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleAdmin || account.Name != "Ada Lovelace" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestAuthService_Register_Defaults(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), zerolog.Nop())

	account, err := svc.Register(context.Background(), "bo", "pw", "", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.Role != domain.DefaultRole {
		t.Fatalf("expected default role, got %s", account.Role)
	}
	if account.Name != "bo" {
		t.Fatalf("expected name to default to username, got %q", account.Name)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), zerolog.Nop())

	if _, err := svc.Register(context.Background(), "", "pass", "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pass", "", "owner"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), zerolog.Nop())

	_, _ = svc.Register(context.Background(), "bob", "pass", "", "")
	if _, err := svc.Register(context.Background(), "bob", "pass2", "", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	account, err := svc.Register(context.Background(), "carol", "s3cret", "Carol", "staff")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	want := domain.User{ID: account.ID, Name: "Carol", Role: domain.RoleStaff}
	if user == nil || *user != want {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := user.Validate(); err != nil {
		t.Fatalf("login must yield a valid session user: %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), zerolog.Nop())

	_, _ = svc.Register(context.Background(), "dave", "goodpass", "", "")
	if _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	if err := svc.EnsureAdmin(context.Background(), "", "", ""); err != nil {
		t.Fatalf("blank seed must be a no-op, got %v", err)
	}
	if len(repo.accounts) != 0 {
		t.Fatalf("blank seed created an account")
	}

	if err := svc.EnsureAdmin(context.Background(), "root", "pw", "Root"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	first := repo.accounts["root"]
	if first == nil || first.Role != domain.RoleAdmin {
		t.Fatalf("expected seeded admin, got %+v", first)
	}

	if err := svc.EnsureAdmin(context.Background(), "root", "other", "Root"); err != nil {
		t.Fatalf("second EnsureAdmin: %v", err)
	}
	if repo.accounts["root"].ID != first.ID {
		t.Fatalf("existing admin must be kept")
	}

	repo.findErr = errors.New("db down")
	if err := svc.EnsureAdmin(context.Background(), "other", "pw", ""); err == nil {
		t.Fatalf("expected repository error to surface")
	}
}

package memory

import (
	"context"
	"sync"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// AuthRepository keeps accounts in memory, keyed by username.
type AuthRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{accounts: make(map[string]domain.Account)}
}

func (r *AuthRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.accounts[account.Username] = *account
	created := *account
	return &created, nil
}

func (r *AuthRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &a, nil
}

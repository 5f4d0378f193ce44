package ports

import (
	"context"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// SessionStore is the process-wide binding between the current user and
// durable storage.
type SessionStore interface {
	Current() *domain.User
	Restore(ctx context.Context) *domain.User
	Login(ctx context.Context, user *domain.User) error
	Logout(ctx context.Context) error
}

package ports

import (
	"context"

	"github.com/stockflow/dashboard/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, name, role string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
}

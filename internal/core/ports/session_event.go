package ports

import (
	"context"
	"time"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// SessionEventInput is the DTO passed from the transport layer to AuditService.
type SessionEventInput struct {
	UserID   string
	UserName string
	Kind     string
	At       time.Time
}

// AuditService records session transitions.
type AuditService interface {
	Record(ctx context.Context, event SessionEventInput) error
}

// SessionEventRepository persists the session audit trail.
type SessionEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.SessionEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SessionEvent, error)
}

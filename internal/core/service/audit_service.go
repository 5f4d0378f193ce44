package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/ports"
)

type auditService struct {
	repo ports.SessionEventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.SessionEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record validates and persists a single session transition.
func (s *auditService) Record(ctx context.Context, in ports.SessionEventInput) error {
	kind := domain.SessionEventKind(in.Kind)
	if kind != domain.SessionLogin && kind != domain.SessionLogout {
		return fmt.Errorf("record session event: unknown kind %q", in.Kind)
	}
	if in.UserID == "" {
		return fmt.Errorf("record session event: %w", domain.ErrInvalidUser)
	}

	event := &domain.SessionEvent{
		UserID:   in.UserID,
		UserName: in.UserName,
		Kind:     kind,
		At:       in.At.UTC(),
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("record session event: %w", err)
	}

	s.log.Debug().
		Str("user_id", in.UserID).
		Str("kind", in.Kind).
		Msg("session event recorded")
	return nil
}

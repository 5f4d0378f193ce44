package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/ports"
)

type stubEventRepo struct {
	events    []*domain.SessionEvent
	insertErr error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.SessionEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

func (r *stubEventRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.SessionEvent, error) {
	var out []*domain.SessionEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	err := svc.Record(context.Background(), ports.SessionEventInput{
		UserID: "1", UserName: "Ada", Kind: "login", At: at,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	got := repo.events[0]
	if got.Kind != domain.SessionLogin || got.UserID != "1" || !got.At.Equal(at) || got.At.Location() != time.UTC {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestAuditService_Record_Validation(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), ports.SessionEventInput{UserID: "1", Kind: "reboot"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	err := svc.Record(context.Background(), ports.SessionEventInput{Kind: "logout"})
	if !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if len(repo.events) != 0 {
		t.Fatalf("invalid events must not be stored")
	}
}

func TestAuditService_Record_RepoFailure(t *testing.T) {
	boom := errors.New("insert failed")
	svc := NewAuditService(&stubEventRepo{insertErr: boom}, zerolog.Nop())

	err := svc.Record(context.Background(), ports.SessionEventInput{UserID: "1", Kind: "logout", At: time.Now()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

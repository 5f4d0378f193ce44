package memory

import (
	"context"
	"sync"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// SessionEventRepository is an append-only in-memory audit trail.
type SessionEventRepository struct {
	mu     sync.RWMutex
	events []domain.SessionEvent
}

func NewSessionEventRepository() *SessionEventRepository {
	return &SessionEventRepository{}
}

func (r *SessionEventRepository) InsertEvent(_ context.Context, event *domain.SessionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// ListByUser returns the newest events for userID first.
func (r *SessionEventRepository) ListByUser(_ context.Context, userID string, limit int) ([]*domain.SessionEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.SessionEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].UserID != userID {
			continue
		}
		e := r.events[i]
		out = append(out, &e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockflow/dashboard/internal/core/ports"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []ports.SessionEventInput
	done   chan struct{}
	want   int
}

func (r *recordingAudit) Record(_ context.Context, e ports.SessionEventInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	const perUser = 20
	users := []string{"1", "2", "3"}
	audit := &recordingAudit{done: make(chan struct{}), want: perUser * len(users)}

	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(4, audit, zerolog.Nop())
	d.Start(ctx)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < perUser; i++ {
		for _, u := range users {
			kind := "login"
			if i%2 == 1 {
				kind = "logout"
			}
			d.Enqueue(ports.SessionEventInput{UserID: u, Kind: kind, At: base.Add(time.Duration(i) * time.Second)})
		}
	}

	select {
	case <-audit.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
	cancel()
	d.Wait()

	last := map[string]time.Time{}
	audit.mu.Lock()
	defer audit.mu.Unlock()
	for _, e := range audit.events {
		if prev, ok := last[e.UserID]; ok && !e.At.After(prev) {
			t.Fatalf("events for user %s out of order", e.UserID)
		}
		last[e.UserID] = e.At
	}
}

func TestDispatcher_ShardIndexDeterministic(t *testing.T) {
	d := NewDispatcher(0, &recordingAudit{done: make(chan struct{})}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	for _, id := range []string{"", "1", "some-long-uuid-value"} {
		a, b := d.shardIndex(id), d.shardIndex(id)
		if a != b || a < 0 || a >= len(d.workers) {
			t.Fatalf("shardIndex(%q) = %d/%d", id, a, b)
		}
	}
}

func TestDispatcher_EnqueueDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, &recordingAudit{done: make(chan struct{})}, zerolog.Nop())

	// workers not started: the buffer fills and further events are dropped
	for i := 0; i < channelBuffer+5; i++ {
		d.Enqueue(ports.SessionEventInput{UserID: "1", Kind: "login"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_CloseDrainsBuffered(t *testing.T) {
	audit := &recordingAudit{done: make(chan struct{}), want: 10}
	d := NewDispatcher(2, audit, zerolog.Nop())

	for i := 0; i < 10; i++ {
		d.Enqueue(ports.SessionEventInput{UserID: "1", Kind: "login"})
	}
	d.Start(context.Background())
	d.Close()
	d.Wait()

	audit.mu.Lock()
	defer audit.mu.Unlock()
	if len(audit.events) != 10 {
		t.Fatalf("expected 10 drained events, got %d", len(audit.events))
	}
}

func TestDispatcher_EnqueueAfterCloseIsDropped(t *testing.T) {
	audit := &recordingAudit{done: make(chan struct{}), want: 1}
	d := NewDispatcher(2, audit, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(ports.SessionEventInput{UserID: "1", Kind: "login"})
	d.Close()
	// a request still in flight after shutdown
	d.Enqueue(ports.SessionEventInput{UserID: "1", Kind: "logout"})
	d.Close()
	d.Wait()

	audit.mu.Lock()
	defer audit.mu.Unlock()
	if len(audit.events) != 1 || audit.events[0].Kind != "login" {
		t.Fatalf("expected only the event enqueued before Close, got %+v", audit.events)
	}
}

// Package session holds the process-wide current user and keeps it
// consistent with a single durable key-value slot.
//
// Lifecycle: construct with New, call Init once at startup to restore a
// previously persisted user, and Teardown on shutdown. Login and Logout
// write through to the backing store before they return, so the very next
// Restore observes the new state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/ports"
)

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "stockflow.user"

// Store implements ports.SessionStore.
type Store struct {
	mu      sync.RWMutex
	kv      ports.KeyValueStore
	codec   Codec
	key     string
	current *domain.User
	log     zerolog.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithCodec replaces the default JSON codec.
func WithCodec(c Codec) Option {
	return func(s *Store) { s.codec = c }
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func New(kv ports.KeyValueStore, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		codec: JSONCodec{},
		key:   DefaultKey,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init restores the persisted user, if any, as the current user.
func (s *Store) Init(ctx context.Context) *domain.User {
	u := s.Restore(ctx)

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()

	if u != nil {
		s.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("session restored")
	} else {
		s.log.Debug().Msg("no session to restore")
	}
	return clone(u)
}

// Teardown drops the in-memory user without touching the durable slot.
func (s *Store) Teardown() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns a copy of the current user, or nil when unauthenticated.
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// Restore reads the durable slot. Missing, unreadable or malformed data all
// yield nil.
func (s *Store) Restore(ctx context.Context) *domain.User {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.log.Warn().Err(err).Str("key", s.key).Msg("session read failed, treating as absent")
		}
		return nil
	}

	u, err := s.codec.Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("malformed session data, treating as absent")
		return nil
	}
	return u
}

// Login persists user and makes it current. The in-memory state changes
// only after the durable write succeeded.
func (s *Store) Login(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	raw, err := s.codec.Encode(user)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("login: persist session: %w", err)
	}
	s.current = clone(user)

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session started")
	return nil
}

// Logout removes the durable slot and clears the current user. Safe to
// call without an active session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("logout: remove session: %w", err)
	}
	if s.current != nil {
		s.log.Info().Str("user_id", s.current.ID).Msg("session ended")
	}
	s.current = nil
	return nil
}

func clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

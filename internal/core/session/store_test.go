package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub key-value store
// ---------------------------------------------------------------------------

type stubKV struct {
	data      map[string][]byte
	getErr    error
	setErr    error
	removeErr error
	sets      int
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string][]byte)}
}

func (k *stubKV) Get(_ context.Context, key string) ([]byte, error) {
	if k.getErr != nil {
		return nil, k.getErr
	}
	v, ok := k.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (k *stubKV) Set(_ context.Context, key string, value []byte) error {
	if k.setErr != nil {
		return k.setErr
	}
	k.sets++
	k.data[key] = append([]byte(nil), value...)
	return nil
}

func (k *stubKV) Remove(_ context.Context, key string) error {
	if k.removeErr != nil {
		return k.removeErr
	}
	delete(k.data, key)
	return nil
}

var (
	ada = &domain.User{ID: "1", Name: "Ada", Role: domain.RoleAdmin}
	bo  = &domain.User{ID: "2", Name: "Bo", Role: domain.RoleStaff}
)

func TestStore_Restore_AbsentOrMalformed(t *testing.T) {
	cases := map[string][]byte{
		"not json":     []byte("{"),
		"empty":        []byte(""),
		"null":         []byte("null"),
		"array":        []byte(`[1,2]`),
		"missing id":   []byte(`{"name":"Ada","role":"admin"}`),
		"unknown role": []byte(`{"id":"1","name":"Ada","role":"root"}`),
		"wrong types":  []byte(`{"id":1,"name":"Ada","role":"admin"}`),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := newStubKV()
			kv.data[DefaultKey] = raw
			s := New(kv, zerolog.Nop())

			if u := s.Restore(context.Background()); u != nil {
				t.Fatalf("expected nil user, got %+v", u)
			}
		})
	}

	t.Run("no value", func(t *testing.T) {
		s := New(newStubKV(), zerolog.Nop())
		if u := s.Restore(context.Background()); u != nil {
			t.Fatalf("expected nil user, got %+v", u)
		}
	})

	t.Run("read error", func(t *testing.T) {
		kv := newStubKV()
		kv.getErr = errors.New("disk gone")
		s := New(kv, zerolog.Nop())
		if u := s.Restore(context.Background()); u != nil {
			t.Fatalf("expected nil user, got %+v", u)
		}
	})
}

func TestStore_Login_RoundTripAcrossInstances(t *testing.T) {
	for _, codec := range []Codec{JSONCodec{}, NewJWTCodec("secret")} {
		kv := newStubKV()
		first := New(kv, zerolog.Nop(), WithCodec(codec))

		if err := first.Login(context.Background(), ada); err != nil {
			t.Fatalf("login: %v", err)
		}
		if got := first.Current(); got == nil || *got != *ada {
			t.Fatalf("current after login = %+v", got)
		}

		fresh := New(kv, zerolog.Nop(), WithCodec(codec))
		got := fresh.Restore(context.Background())
		if got == nil || *got != *ada {
			t.Fatalf("restore in fresh store = %+v, want %+v", got, ada)
		}
	}
}

func TestStore_Login_Idempotent(t *testing.T) {
	kv := newStubKV()
	s := New(kv, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := s.Login(context.Background(), bo); err != nil {
			t.Fatalf("login #%d: %v", i, err)
		}
	}
	if got := s.Restore(context.Background()); got == nil || *got != *bo {
		t.Fatalf("restore = %+v", got)
	}
	if len(kv.data) != 1 {
		t.Fatalf("expected a single slot, got %d", len(kv.data))
	}
}

func TestStore_Login_InvalidUser(t *testing.T) {
	kv := newStubKV()
	s := New(kv, zerolog.Nop())

	err := s.Login(context.Background(), &domain.User{ID: "3", Name: "", Role: domain.RoleStaff})
	if !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if kv.sets != 0 {
		t.Fatalf("invalid user must not be persisted")
	}
}

func TestStore_Login_PersistFailureKeepsState(t *testing.T) {
	kv := newStubKV()
	s := New(kv, zerolog.Nop())
	if err := s.Login(context.Background(), bo); err != nil {
		t.Fatalf("login: %v", err)
	}

	kv.setErr = errors.New("read-only")
	if err := s.Login(context.Background(), ada); err == nil {
		t.Fatalf("expected persist error")
	}
	if got := s.Current(); got == nil || got.ID != bo.ID {
		t.Fatalf("current changed despite failed write: %+v", got)
	}
}

func TestStore_Logout(t *testing.T) {
	kv := newStubKV()
	s := New(kv, zerolog.Nop())

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("logout without session: %v", err)
	}

	if err := s.Login(context.Background(), ada); err != nil {
		t.Fatalf("login: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Logout(context.Background()); err != nil {
			t.Fatalf("logout #%d: %v", i, err)
		}
	}
	if s.Current() != nil {
		t.Fatalf("expected no current user")
	}
	if u := s.Restore(context.Background()); u != nil {
		t.Fatalf("expected nil after logout, got %+v", u)
	}
}

func TestStore_InitAndTeardown(t *testing.T) {
	kv := newStubKV()
	if err := New(kv, zerolog.Nop()).Login(context.Background(), ada); err != nil {
		t.Fatalf("login: %v", err)
	}

	s := New(kv, zerolog.Nop())
	if s.Current() != nil {
		t.Fatalf("current must be empty before Init")
	}
	if got := s.Init(context.Background()); got == nil || got.ID != ada.ID {
		t.Fatalf("Init = %+v", got)
	}
	if got := s.Current(); got == nil || got.ID != ada.ID {
		t.Fatalf("current after Init = %+v", got)
	}

	s.Teardown()
	if s.Current() != nil {
		t.Fatalf("expected no current user after Teardown")
	}
	if s.Restore(context.Background()) == nil {
		t.Fatalf("Teardown must not clear durable state")
	}
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	s := New(newStubKV(), zerolog.Nop())
	if err := s.Login(context.Background(), ada); err != nil {
		t.Fatalf("login: %v", err)
	}
	u := s.Current()
	u.Role = domain.RoleStaff
	if s.Current().Role != domain.RoleAdmin {
		t.Fatalf("mutating the returned user leaked into the store")
	}
}

func TestStore_WithKey(t *testing.T) {
	kv := newStubKV()
	s := New(kv, zerolog.Nop(), WithKey("custom"))
	if err := s.Login(context.Background(), bo); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := kv.data["custom"]; !ok {
		t.Fatalf("expected value under custom key, got %v", kv.data)
	}
}

func TestFromContext(t *testing.T) {
	s := New(newStubKV(), zerolog.Nop())
	ctx := WithStore(context.Background(), s)
	if FromContext(ctx) != s {
		t.Fatalf("FromContext returned a different store")
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoSessionProvider) {
			t.Fatalf("expected ErrNoSessionProvider panic, got %v", r)
		}
	}()
	FromContext(context.Background())
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

type stubSessionRepo struct {
	sessions map[string]*domain.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Insert(_ context.Context, s *domain.Session) error {
	clone := *s
	r.sessions[s.ID] = &clone
	return nil
}

func (r *stubSessionRepo) Find(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = expiresAt
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

const testTTL = 600 * time.Second

// newTestSessionStore pins the clock to a mutable instant.
func newTestSessionStore(repo *stubSessionRepo, rolling bool) (*SessionStore, *time.Time) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(repo, SessionConfig{Secret: "secret", TTL: testTTL, Rolling: rolling}, zerolog.Nop())
	store.now = func() time.Time { return now }
	return store, &now
}

func TestSessionStore_CreateAndLoad(t *testing.T) {
	repo := newStubSessionRepo()
	store, _ := newTestSessionStore(repo, true)

	session, err := store.Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected an opaque session id")
	}
	if got := session.ExpiresAt.Sub(session.CreatedAt); got != testTTL {
		t.Fatalf("expected TTL %v from creation, got %v", testTTL, got)
	}

	loaded, err := store.Load(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Username != "alice" {
		t.Fatalf("unexpected principal: %q", loaded.Username)
	}
}

func TestSessionStore_ExpiresWithoutTouch(t *testing.T) {
	repo := newStubSessionRepo()
	store, now := newTestSessionStore(repo, true)

	session, err := store.Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	*now = now.Add(601 * time.Second)
	if _, err := store.Load(context.Background(), session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after TTL, got %v", err)
	}
	// Expired record is purged, not kept around.
	if _, ok := repo.sessions[session.ID]; ok {
		t.Fatalf("expected expired session to be deleted from the store")
	}
}

func TestSessionStore_RollingRenewal(t *testing.T) {
	repo := newStubSessionRepo()
	store, now := newTestSessionStore(repo, true)

	session, err := store.Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Touch at T+300 resets the deadline; the session must still be valid at
	// T+700, past the original expiry.
	*now = now.Add(300 * time.Second)
	touched, err := store.Touch(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if got := touched.ExpiresAt.Sub(*now); got != testTTL {
		t.Fatalf("expected refreshed expiry %v from touch, got %v", testTTL, got)
	}

	*now = now.Add(400 * time.Second) // T+700
	if _, err := store.Load(context.Background(), session.ID); err != nil {
		t.Fatalf("expected touched session to be valid at T+700: %v", err)
	}
}

func TestSessionStore_TouchWithoutRolling(t *testing.T) {
	repo := newStubSessionRepo()
	store, now := newTestSessionStore(repo, false)

	session, err := store.Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	*now = now.Add(300 * time.Second)
	touched, err := store.Touch(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if !touched.ExpiresAt.Equal(session.ExpiresAt) {
		t.Fatalf("expected expiry unchanged with rolling disabled")
	}
}

func TestSessionStore_Destroy(t *testing.T) {
	repo := newStubSessionRepo()
	store, _ := newTestSessionStore(repo, true)

	session, err := store.Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Destroy(context.Background(), session.ID); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := store.Load(context.Background(), session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}
	// Destroying twice is not an error.
	if err := store.Destroy(context.Background(), session.ID); err != nil {
		t.Fatalf("second Destroy: %v", err)
	}
}

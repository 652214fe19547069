package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// SessionConfig is passed explicitly to the store at construction; there is
// no process-wide session state.
type SessionConfig struct {
	Secret  string
	TTL     time.Duration
	Rolling bool
}

// SessionStore implements the create/load/touch/destroy lifecycle over the
// document store. Expiry is authoritative here: the repository's TTL cleanup
// is an optimization, Load enforces the deadline itself.
type SessionStore struct {
	repo   ports.SessionRepository
	cfg    SessionConfig
	logger zerolog.Logger
	now    func() time.Time
}

func NewSessionStore(repo ports.SessionRepository, cfg SessionConfig, logger zerolog.Logger) *SessionStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 600 * time.Second
	}
	return &SessionStore{repo: repo, cfg: cfg, logger: logger, now: time.Now}
}

func (s *SessionStore) Create(ctx context.Context, username string) (*domain.Session, error) {
	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	if err := s.repo.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now().UTC()) {
		if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Warn().Err(err).Str("session_id", id).Msg("failed to purge expired session")
		}
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Touch implements rolling renewal: under continuous use a session never
// expires, after TTL of inactivity it does. With rolling disabled Touch is a
// plain Load.
func (s *SessionStore) Touch(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.cfg.Rolling {
		return session, nil
	}

	session.ExpiresAt = s.now().UTC().Add(s.cfg.TTL)
	if err := s.repo.UpdateExpiry(ctx, id, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

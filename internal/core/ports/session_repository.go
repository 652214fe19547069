package ports

import (
	"context"
	"time"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

// SessionRepository persists sessions in the document store so they survive
// process restarts. Find returns domain.ErrSessionNotFound for a missing id;
// expiry enforcement lives in the session store, not here.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

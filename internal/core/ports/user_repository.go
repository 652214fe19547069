package ports

import (
	"context"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

// UserRepository is the credential store: find-by-username and create.
// Create must reject a duplicate username with domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

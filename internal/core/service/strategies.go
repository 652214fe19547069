package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// hashPassword produces a salted bcrypt hash; two hashes of the same input
// differ because the salt is random and embedded in the output.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword checks plaintext against a stored hash. bcrypt compares in
// constant time; a malformed hash record is a verification failure, never a
// panic.
func verifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// registerStrategy creates an account when the username is free.
type registerStrategy struct {
	users ports.UserRepository
}

// NewRegisterStrategy returns the "register" strategy over the given
// credential store.
func NewRegisterStrategy(users ports.UserRepository) ports.Strategy {
	return &registerStrategy{users: users}
}

func (s *registerStrategy) Verify(ctx context.Context, creds domain.Credentials) domain.Outcome {
	_, err := s.users.FindByUsername(ctx, creds.Username)
	switch {
	case err == nil:
		return domain.Failure(domain.ReasonUserExists)
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.Errored(err)
	}

	hash, err := hashPassword(creds.Password)
	if err != nil {
		return domain.Errored(err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Username:     creds.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// Uniqueness is enforced at the store; a concurrent registration
		// surfaces here as a duplicate, not as an infrastructure error.
		if errors.Is(err, domain.ErrUserExists) {
			return domain.Failure(domain.ReasonUserExists)
		}
		return domain.Errored(err)
	}

	return domain.Success(user)
}

// loginStrategy verifies a known username against its stored hash.
type loginStrategy struct {
	users ports.UserRepository
}

// NewLoginStrategy returns the "login" strategy over the given credential
// store.
func NewLoginStrategy(users ports.UserRepository) ports.Strategy {
	return &loginStrategy{users: users}
}

func (s *loginStrategy) Verify(ctx context.Context, creds domain.Credentials) domain.Outcome {
	user, err := s.users.FindByUsername(ctx, creds.Username)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.Failure(domain.ReasonUserNotFound)
	case err != nil:
		return domain.Errored(err)
	}

	if !verifyPassword(creds.Password, user.PasswordHash) {
		return domain.Failure(domain.ReasonInvalidPassword)
	}

	return domain.Success(user)
}

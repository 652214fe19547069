package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// AuthService resolves named strategies and owns the session
// serialize/deserialize hooks.
type AuthService struct {
	strategies ports.StrategyRegistry
	users      ports.UserRepository
	logger     zerolog.Logger
}

// NewAuthService builds the service over an explicit strategy registry.
func NewAuthService(strategies ports.StrategyRegistry, users ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{strategies: strategies, users: users, logger: logger}
}

// DefaultStrategies returns the register/login registry over the given
// credential store.
func DefaultStrategies(users ports.UserRepository) ports.StrategyRegistry {
	return ports.StrategyRegistry{
		ports.StrategyRegister: NewRegisterStrategy(users),
		ports.StrategyLogin:    NewLoginStrategy(users),
	}
}

func (s *AuthService) Authenticate(ctx context.Context, strategy string, creds domain.Credentials) domain.Outcome {
	st, ok := s.strategies[strategy]
	if !ok {
		return domain.Errored(fmt.Errorf("unknown auth strategy %q", strategy))
	}
	if creds.Username == "" || creds.Password == "" {
		return domain.Failure(domain.ReasonInvalidPassword)
	}

	outcome := st.Verify(ctx, creds)
	switch {
	case outcome.Err != nil:
		s.logger.Error().Err(outcome.Err).Str("strategy", strategy).Msg("auth strategy failed")
	case !outcome.Succeeded():
		s.logger.Info().Str("strategy", strategy).Str("username", creds.Username).Str("reason", outcome.Reason).Msg("auth rejected")
	default:
		s.logger.Info().Str("strategy", strategy).Str("username", outcome.User.Username).Msg("auth accepted")
	}
	return outcome
}

// SerializeUser stores only the username in the session, not the record.
func (s *AuthService) SerializeUser(user *domain.User) string {
	return user.Username
}

// DeserializeUser re-fetches the full user on every call so gated requests
// always see fresh state.
func (s *AuthService) DeserializeUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("deserialize user %q: %w", username, err)
	}
	return user, nil
}

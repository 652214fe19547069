package ports

import (
	"context"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

// Strategy names resolved at gate-invocation time.
const (
	StrategyRegister = "register"
	StrategyLogin    = "login"
)

// Strategy is a named verification step: pure function of the submitted
// credentials, may suspend on store I/O.
type Strategy interface {
	Verify(ctx context.Context, creds domain.Credentials) domain.Outcome
}

// StrategyRegistry maps strategy names to implementations. It is passed as an
// explicit dependency rather than living in a package-level registry.
type StrategyRegistry map[string]Strategy

// AuthService resolves strategies by name and owns the session
// serialize/deserialize hooks.
type AuthService interface {
	// Authenticate runs the named strategy. An unknown name yields an
	// Errored outcome.
	Authenticate(ctx context.Context, strategy string, creds domain.Credentials) domain.Outcome
	// SerializeUser reduces a user to the principal reference stored in the
	// session (the username, not the whole record).
	SerializeUser(user *domain.User) string
	// DeserializeUser re-fetches the full user from the store. Called on
	// every gated request: always-fresh over staleness.
	DeserializeUser(ctx context.Context, username string) (*domain.User, error)
}

// SessionStore is the server-side session lifecycle: create on login, load
// and touch on every gated request, destroy on logout.
type SessionStore interface {
	Create(ctx context.Context, username string) (*domain.Session, error)
	Load(ctx context.Context, id string) (*domain.Session, error)
	// Touch loads the session and, when rolling renewal is enabled, resets
	// its expiry to a full TTL from now.
	Touch(ctx context.Context, id string) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
}

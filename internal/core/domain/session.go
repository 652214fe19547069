package domain

import (
	"errors"
	"time"
)

// ErrSessionNotFound covers both a missing record and an expired one: an
// expired session is indistinguishable from no session to the caller.
var ErrSessionNotFound = errors.New("session not found")

// Session is a server-side authentication session. The ID is the opaque value
// carried (signed) in the cookie; Username is the principal reference — the
// full user is re-fetched from the store on every request that needs it.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// Context keys populated by the gates.
const (
	ContextKeyUsername = "username"
	ContextKeyUser     = "user"
)

// RedirectUnauthorized is where the page gate sends anonymous requests.
const RedirectUnauthorized = "/unauthorized"

// SessionGate checks session validity before a handler runs. Both variants
// share the same check; they differ only in how a failure is reported:
// pages get a redirect, API clients get a 401 payload.
type SessionGate struct {
	sessions ports.SessionStore
	auth     ports.AuthService
	codec    *CookieCodec
	rolling  bool
	log      zerolog.Logger
}

func NewSessionGate(sessions ports.SessionStore, auth ports.AuthService, codec *CookieCodec, rolling bool, log zerolog.Logger) *SessionGate {
	return &SessionGate{sessions: sessions, auth: auth, codec: codec, rolling: rolling, log: log}
}

// Page continues to the next handler when the request carries a valid
// session; otherwise it redirects to the unauthorized view.
func (g *SessionGate) Page(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := g.authenticate(c); err != nil {
			if isAnonymous(err) {
				return c.Redirect(http.StatusFound, RedirectUnauthorized)
			}
			return err
		}
		return next(c)
	}
}

// API performs the same check but answers failures with a structured 401
// payload, never a redirect: API clients cannot follow redirects usefully.
func (g *SessionGate) API(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := g.authenticate(c); err != nil {
			if isAnonymous(err) {
				return echo.NewHTTPError(http.StatusUnauthorized, "no autorizado")
			}
			return err
		}
		return next(c)
	}
}

// authenticate resolves the session cookie to a fresh principal: decode the
// signed cookie, touch the session (rolling renewal), then re-fetch the full
// user from the store. On success the principal lands in the echo context.
func (g *SessionGate) authenticate(c echo.Context) error {
	sid, err := g.codec.Decode(c.Request())
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	session, err := g.sessions.Touch(ctx, sid)
	if err != nil {
		return err
	}

	if g.rolling {
		cookie, err := g.codec.Encode(session.ID)
		if err != nil {
			return err
		}
		c.SetCookie(cookie)
	}

	user, err := g.auth.DeserializeUser(ctx, session.Username)
	if err != nil {
		return err
	}

	c.Set(ContextKeyUsername, user.Username)
	c.Set(ContextKeyUser, user)
	return nil
}

// isAnonymous separates "no valid session" from infrastructure failures;
// only the former turns into a gate rejection.
func isAnonymous(err error) bool {
	return errors.Is(err, errNoSessionCookie) ||
		errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrUserNotFound)
}

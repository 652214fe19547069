package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
	touched  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, username string) (*domain.Session, error) {
	session := &domain.Session{ID: "sid-" + username, Username: username, ExpiresAt: time.Now().Add(time.Hour)}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *stubSessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionStore) Touch(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.touched = append(s.touched, id)
	return session, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubAuthService struct {
	users map[string]*domain.User
}

func (s *stubAuthService) Authenticate(_ context.Context, _ string, _ domain.Credentials) domain.Outcome {
	return domain.Failure("not used in these tests")
}

func (s *stubAuthService) SerializeUser(user *domain.User) string { return user.Username }

func (s *stubAuthService) DeserializeUser(_ context.Context, username string) (*domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func newTestGate(t *testing.T) (*SessionGate, *stubSessionStore, *CookieCodec) {
	t.Helper()
	sessions := newStubSessionStore()
	auth := &stubAuthService{users: map[string]*domain.User{
		"alice": {ID: "1", Username: "alice"},
	}}
	codec := NewCookieCodec("sid", "test-secret", 600*time.Second)
	return NewSessionGate(sessions, auth, codec, true, zerolog.Nop()), sessions, codec
}

func okHandler(c echo.Context) error {
	username, _ := c.Get(ContextKeyUsername).(string)
	return c.String(http.StatusOK, username)
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/index", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAPIGate_NoSessionReturns401(t *testing.T) {
	gate, _, _ := newTestGate(t)

	rec := doRequest(t, gate.API, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Fatalf("api gate must never redirect, got Location %q", loc)
	}
	if !strings.Contains(rec.Body.String(), "no autorizado") {
		t.Fatalf("expected structured error body, got %q", rec.Body.String())
	}
}

func TestPageGate_NoSessionRedirects(t *testing.T) {
	gate, _, _ := newTestGate(t)

	rec := doRequest(t, gate.Page, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != RedirectUnauthorized {
		t.Fatalf("expected redirect to %s, got %q", RedirectUnauthorized, loc)
	}
}

func TestAPIGate_ValidSessionContinues(t *testing.T) {
	gate, sessions, codec := newTestGate(t)
	session, _ := sessions.Create(context.Background(), "alice")
	cookie, err := codec.Encode(session.ID)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rec := doRequest(t, gate.API, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "alice" {
		t.Fatalf("expected principal in context, got %q", rec.Body.String())
	}
	// Rolling renewal: the gate touches the session and reissues the cookie.
	if len(sessions.touched) != 1 || sessions.touched[0] != session.ID {
		t.Fatalf("expected session touched once, got %v", sessions.touched)
	}
	if cookies := rec.Result().Cookies(); len(cookies) == 0 {
		t.Fatalf("expected cookie reissued on touch")
	}
}

func TestAPIGate_TamperedCookieRejected(t *testing.T) {
	gate, sessions, _ := newTestGate(t)
	session, _ := sessions.Create(context.Background(), "alice")

	other := NewCookieCodec("sid", "other-secret", 600*time.Second)
	cookie, err := other.Encode(session.ID)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rec := doRequest(t, gate.API, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %d", rec.Code)
	}
}

func TestPageGate_UnknownSessionRedirects(t *testing.T) {
	gate, _, codec := newTestGate(t)
	cookie, err := codec.Encode("stale-session-id")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	rec := doRequest(t, gate.Page, cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 redirect, got %d", rec.Code)
	}
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := NewCookieCodec("sid", "test-secret", 600*time.Second)

	cookie, err := codec.Encode("some-opaque-id")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HTTP-only")
	}
	if cookie.MaxAge != 600 {
		t.Fatalf("expected MaxAge 600, got %d", cookie.MaxAge)
	}
	if cookie.Value == "some-opaque-id" {
		t.Fatalf("cookie value must be a signed envelope, not the raw id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	sid, err := codec.Decode(req)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sid != "some-opaque-id" {
		t.Fatalf("expected round-tripped id, got %q", sid)
	}

	if c := codec.Clear(); c.MaxAge != -1 {
		t.Fatalf("expected clearing cookie to expire immediately")
	}
}

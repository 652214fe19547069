package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aleramosAR/Autenticacion-1/internal/api/middleware"
	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

type stubAuth struct {
	outcomes map[string]domain.Outcome // keyed by strategy name
}

func (s *stubAuth) Authenticate(_ context.Context, strategy string, _ domain.Credentials) domain.Outcome {
	return s.outcomes[strategy]
}

func (s *stubAuth) SerializeUser(user *domain.User) string { return user.Username }

func (s *stubAuth) DeserializeUser(_ context.Context, username string) (*domain.User, error) {
	return &domain.User{Username: username}, nil
}

type stubSessions struct {
	created   []string
	destroyed []string
	sessions  map[string]*domain.Session
}

func newStubSessions() *stubSessions {
	return &stubSessions{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessions) Create(_ context.Context, username string) (*domain.Session, error) {
	session := &domain.Session{ID: "sid-" + username, Username: username, ExpiresAt: time.Now().Add(time.Hour)}
	s.created = append(s.created, username)
	s.sessions[session.ID] = session
	return session, nil
}

func (s *stubSessions) Load(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessions) Touch(ctx context.Context, id string) (*domain.Session, error) {
	return s.Load(ctx, id)
}

func (s *stubSessions) Destroy(_ context.Context, id string) error {
	s.destroyed = append(s.destroyed, id)
	delete(s.sessions, id)
	return nil
}

func newTestAuthHandler(auth ports.AuthService) (*AuthHandler, *stubSessions, *middleware.CookieCodec) {
	sessions := newStubSessions()
	codec := middleware.NewCookieCodec("sid", "test-secret", 600*time.Second)
	return NewAuthHandler(auth, sessions, codec), sessions, codec
}

func postForm(t *testing.T, h echo.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthHandler_LoginSuccessEstablishesSession(t *testing.T) {
	auth := &stubAuth{outcomes: map[string]domain.Outcome{
		ports.StrategyLogin: domain.Success(&domain.User{ID: "1", Username: "alice"}),
	}}
	h, sessions, _ := newTestAuthHandler(auth)

	rec := postForm(t, h.Login, url.Values{"username": {"alice"}, "password": {"pw"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/index" {
		t.Fatalf("expected redirect to /index, got %q", loc)
	}
	if len(sessions.created) != 1 || sessions.created[0] != "alice" {
		t.Fatalf("expected a session for alice, got %v", sessions.created)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HTTP-only")
	}
}

func TestAuthHandler_LoginFailureRedirects(t *testing.T) {
	auth := &stubAuth{outcomes: map[string]domain.Outcome{
		ports.StrategyLogin: domain.Failure(domain.ReasonInvalidPassword),
	}}
	h, sessions, _ := newTestAuthHandler(auth)

	rec := postForm(t, h.Login, url.Values{"username": {"alice"}, "password": {"wrong"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login-error" {
		t.Fatalf("expected redirect to /login-error, got %q", loc)
	}
	if len(sessions.created) != 0 {
		t.Fatalf("no session may be created on failure")
	}
}

func TestAuthHandler_LoginMissingFieldsRedirects(t *testing.T) {
	h, _, _ := newTestAuthHandler(&stubAuth{outcomes: map[string]domain.Outcome{}})

	rec := postForm(t, h.Login, url.Values{"username": {"alice"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login-error" {
		t.Fatalf("expected redirect to /login-error, got %q", loc)
	}
}

func TestAuthHandler_RegisterDuplicateRedirects(t *testing.T) {
	auth := &stubAuth{outcomes: map[string]domain.Outcome{
		ports.StrategyRegister: domain.Failure(domain.ReasonUserExists),
	}}
	h, _, _ := newTestAuthHandler(auth)

	rec := postForm(t, h.Register, url.Values{"username": {"bob"}, "password": {"pw"}})
	if loc := rec.Header().Get("Location"); loc != "/register-error" {
		t.Fatalf("expected redirect to /register-error, got %q", loc)
	}
}

func TestAuthHandler_RegisterSuccessLogsIn(t *testing.T) {
	auth := &stubAuth{outcomes: map[string]domain.Outcome{
		ports.StrategyRegister: domain.Success(&domain.User{ID: "2", Username: "bob"}),
	}}
	h, sessions, _ := newTestAuthHandler(auth)

	rec := postForm(t, h.Register, url.Values{"username": {"bob"}, "password": {"pw"}})
	if loc := rec.Header().Get("Location"); loc != "/index" {
		t.Fatalf("expected redirect to /index, got %q", loc)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected registered user to be logged in")
	}
}

func TestAuthHandler_LogoutDestroysSession(t *testing.T) {
	auth := &stubAuth{outcomes: map[string]domain.Outcome{}}
	h, sessions, codec := newTestAuthHandler(auth)
	session, _ := sessions.Create(context.Background(), "alice")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	cookie, _ := codec.Encode(session.ID)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != session.ID {
		t.Fatalf("expected session destroyed, got %v", sessions.destroyed)
	}
	if !strings.Contains(rec.Body.String(), "alice") {
		t.Fatalf("expected goodbye payload to name the principal, got %s", rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected clearing cookie, got %v", cookies)
	}
}

func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	h, _, _ := newTestAuthHandler(&stubAuth{outcomes: map[string]domain.Outcome{}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on anonymous logout, got %d", rec.Code)
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aleramosAR/Autenticacion-1/internal/api/metrics"
	"github.com/aleramosAR/Autenticacion-1/internal/api/middleware"
	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// Post-auth redirect targets, mirroring the front-end flow: a successful
// login or registration lands on /index, failures land on their error view.
const (
	redirectIndex         = "/index"
	redirectLoginError    = "/login-error"
	redirectRegisterError = "/register-error"
)

// AuthHandler turns login/register/logout requests into strategy invocations
// and session lifecycle calls.
type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionStore
	codec    *middleware.CookieCodec
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionStore, codec *middleware.CookieCodec) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, codec: codec}
}

// credentialsRequest binds from an HTML form post or a JSON body.
type credentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Login runs the "login" strategy and establishes a session on success.
func (h *AuthHandler) Login(c echo.Context) error {
	return h.run(c, ports.StrategyLogin, redirectLoginError)
}

// Register runs the "register" strategy; a new account is logged in
// immediately, matching the original flow.
func (h *AuthHandler) Register(c echo.Context) error {
	return h.run(c, ports.StrategyRegister, redirectRegisterError)
}

func (h *AuthHandler) run(c echo.Context, strategy, failureRedirect string) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(strategy, "failure").Inc()
		return c.Redirect(http.StatusFound, failureRedirect)
	}

	ctx := c.Request().Context()
	outcome := h.auth.Authenticate(ctx, strategy, domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	switch {
	case outcome.Err != nil:
		metrics.AuthAttemptsTotal.WithLabelValues(strategy, "error").Inc()
		return outcome.Err
	case !outcome.Succeeded():
		metrics.AuthAttemptsTotal.WithLabelValues(strategy, "failure").Inc()
		return c.Redirect(http.StatusFound, failureRedirect)
	}
	metrics.AuthAttemptsTotal.WithLabelValues(strategy, "success").Inc()

	session, err := h.sessions.Create(ctx, h.auth.SerializeUser(outcome.User))
	if err != nil {
		return err
	}
	cookie, err := h.codec.Encode(session.ID)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusFound, redirectIndex)
}

// Logout destroys the session, if any, and clears the cookie. It never
// fails on an anonymous request: logging out twice is a no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	username := ""
	if sid, err := h.codec.Decode(c.Request()); err == nil {
		ctx := c.Request().Context()
		if session, err := h.sessions.Load(ctx, sid); err == nil {
			username = session.Username
		}
		if err := h.sessions.Destroy(ctx, sid); err != nil {
			return err
		}
		metrics.SessionsDestroyedTotal.WithLabelValues("logout").Inc()
	}
	c.SetCookie(h.codec.Clear())

	return c.JSON(http.StatusOK, map[string]string{
		"message":  "hasta luego",
		"username": username,
	})
}

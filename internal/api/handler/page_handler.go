package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aleramosAR/Autenticacion-1/internal/api/middleware"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// PageHandler serves the front views. Templating is out of scope, so views
// are minimal JSON payloads; the routing and gating behavior is what matters.
type PageHandler struct {
	sessions ports.SessionStore
	codec    *middleware.CookieCodec
}

func NewPageHandler(sessions ports.SessionStore, codec *middleware.CookieCodec) *PageHandler {
	return &PageHandler{sessions: sessions, codec: codec}
}

// Root redirects to the protected index.
func (h *PageHandler) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/index")
}

// Index is page-gated; it greets the principal established by the gate.
func (h *PageHandler) Index(c echo.Context) error {
	username, _ := c.Get(middleware.ContextKeyUsername).(string)
	return c.JSON(http.StatusOK, map[string]string{
		"view":     "index",
		"username": username,
	})
}

// Login serves the login view, bouncing an already-authenticated visitor to
// the index.
func (h *PageHandler) Login(c echo.Context) error {
	if h.authenticated(c) {
		return c.Redirect(http.StatusFound, "/index")
	}
	return c.JSON(http.StatusOK, map[string]string{"view": "login"})
}

// Register serves the registration view.
func (h *PageHandler) Register(c echo.Context) error {
	if h.authenticated(c) {
		return c.Redirect(http.StatusFound, "/index")
	}
	return c.JSON(http.StatusOK, map[string]string{"view": "register"})
}

func (h *PageHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"view": "unauthorized", "message": "no autorizado"})
}

func (h *PageHandler) LoginError(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"view": "login-error", "message": "error de login"})
}

func (h *PageHandler) RegisterError(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"view": "register-error", "message": "error de registro"})
}

// authenticated reports whether the request carries a live session, without
// gating: the login/register views are public but skip straight to the index
// for a signed-in visitor.
func (h *PageHandler) authenticated(c echo.Context) bool {
	sid, err := h.codec.Decode(c.Request())
	if err != nil {
		return false
	}
	_, err = h.sessions.Load(c.Request().Context(), sid)
	return err == nil
}

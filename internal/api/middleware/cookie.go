package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoSessionCookie = errors.New("no session cookie")

// CookieCodec wraps the opaque session id in a signed envelope: an HS256 JWT
// whose only claim is the id. Clients cannot forge or inspect anything
// useful; all session authority stays server-side. The cookie is HTTP-only
// and its MaxAge is re-issued on every touch when rolling renewal is on.
type CookieCodec struct {
	name   string
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(name, secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{name: name, secret: []byte(secret), ttl: ttl}
}

// Encode wraps the session id and builds the cookie.
func (cc *CookieCodec) Encode(sessionID string) (*http.Cookie, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: sessionID})
	signed, err := token.SignedString(cc.secret)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     cc.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cc.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Decode extracts and verifies the session id from the request cookie. Any
// tampering or signing mismatch reads as "no session".
func (cc *CookieCodec) Decode(r *http.Request) (string, error) {
	cookie, err := r.Cookie(cc.name)
	if err != nil {
		return "", errNoSessionCookie
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	})
	if err != nil || !token.Valid || claims.ID == "" {
		return "", errNoSessionCookie
	}
	return claims.ID, nil
}

// Clear returns an expired cookie that removes the session from the browser.
func (cc *CookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     cc.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

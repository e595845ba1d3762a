// Package auth carries the session token between the browser and the server
// inside a signed cookie, and derives the keys used for that and for
// verification token hashing.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed envelope stored in the session cookie. The session
// token itself is opaque and only meaningful to the sessions table.
type Claims struct {
	jwt.RegisteredClaims
	SessionToken string `json:"sid"`
}

// SessionCookie writes, reads and clears the session cookie.
type SessionCookie struct {
	name   string
	key    []byte
	secure bool
}

// NewSessionCookie returns a SessionCookie. Secure cookies use the
// __Secure- prefixed name.
func NewSessionCookie(key []byte, secure bool) *SessionCookie {
	name := common.SessionCookieName
	if secure {
		name = common.SecureSessionCookieName
	}
	return &SessionCookie{name: name, key: key, secure: secure}
}

func (c *SessionCookie) Name() string {
	return c.name
}

// Sign wraps sessionToken into a HS256 token expiring at expires.
func (c *SessionCookie) Sign(sessionToken string, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		SessionToken: sessionToken,
	})
	return token.SignedString(c.key)
}

// Parse verifies a signed value and returns the session token inside.
func (c *SessionCookie) Parse(value string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.SessionToken == "" {
		return "", common.ErrInvalidToken
	}

	return claims.SessionToken, nil
}

// Write sets the cookie on the response.
func (c *SessionCookie) Write(w http.ResponseWriter, sessionToken string, expires time.Time) error {
	value, err := c.Sign(sessionToken, expires)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read extracts the session token from the request cookie.
// It returns http.ErrNoCookie when the cookie is absent.
func (c *SessionCookie) Read(r *http.Request) (string, error) {
	ck, err := r.Cookie(c.name)
	if err != nil {
		return "", err
	}
	return c.Parse(ck.Value)
}

// Clear expires the cookie in the browser.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

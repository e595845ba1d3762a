package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dishdash/dishdash/internal/common"
)

const csrfTokenBytes = 32

// CSRFCookie implements double-submit protection for anonymous form posts.
// The cookie holds "token|hash" where hash binds the token to the server
// key; the form carries the token alone.
type CSRFCookie struct {
	name   string
	key    []byte
	secure bool
}

func NewCSRFCookie(key []byte, secure bool) *CSRFCookie {
	name := common.CSRFCookieName
	if secure {
		name = common.SecureCSRFCookieName
	}
	return &CSRFCookie{name: name, key: key, secure: secure}
}

func (c *CSRFCookie) Name() string {
	return c.name
}

// Token returns the token of a valid cookie on r. Otherwise a new token is
// generated and its cookie set on w.
func (c *CSRFCookie) Token(w http.ResponseWriter, r *http.Request) (string, error) {
	if token, ok := c.read(r); ok {
		return token, nil
	}

	token, err := common.MakeRandHexString(csrfTokenBytes)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token + "|" + HashToken(token, c.key),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// Check returns ErrCSRFMismatch unless submitted equals the token of a valid
// cookie on r.
func (c *CSRFCookie) Check(r *http.Request, submitted string) error {
	token, ok := c.read(r)
	if !ok || submitted == "" || subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
		return common.ErrCSRFMismatch
	}
	return nil
}

func (c *CSRFCookie) read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.name)
	if err != nil {
		return "", false
	}
	token, hash, found := strings.Cut(ck.Value, "|")
	if !found || token == "" {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(HashToken(token, c.key))) != 1 {
		return "", false
	}
	return token, true
}

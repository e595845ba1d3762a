package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// csrfCookie issues a token on a fresh request and returns it with its cookie.
func csrfCookie(t *testing.T, c *CSRFCookie) (string, *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	token, err := c.Token(rec, httptest.NewRequest(http.MethodGet, "/sign-in", nil))
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return token, cookies[0]
}

func TestCSRFToken_SetsCookie(t *testing.T) {
	t.Parallel()

	c := NewCSRFCookie([]byte("key"), false)
	token, ck := csrfCookie(t, c)

	assert.Len(t, token, 2*csrfTokenBytes)
	assert.Equal(t, common.CSRFCookieName, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, token+"|"+HashToken(token, []byte("key")), ck.Value)
}

func TestCSRFToken_ReusesValidCookie(t *testing.T) {
	t.Parallel()

	c := NewCSRFCookie([]byte("key"), false)
	token, ck := csrfCookie(t, c)

	req := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	req.AddCookie(ck)
	rec := httptest.NewRecorder()

	again, err := c.Token(rec, req)
	require.NoError(t, err)
	assert.Equal(t, token, again)
	assert.Empty(t, rec.Result().Cookies())
}

func TestCSRFToken_SecureName(t *testing.T) {
	t.Parallel()

	c := NewCSRFCookie([]byte("key"), true)
	_, ck := csrfCookie(t, c)
	assert.Equal(t, common.SecureCSRFCookieName, ck.Name)
	assert.True(t, ck.Secure)
}

func TestCSRFCheck(t *testing.T) {
	t.Parallel()

	c := NewCSRFCookie([]byte("key"), false)
	token, ck := csrfCookie(t, c)
	forged := &http.Cookie{Name: ck.Name, Value: "attacker|" + HashToken("attacker", []byte("other key"))}

	tests := []struct {
		name      string
		cookie    *http.Cookie
		submitted string
		wantErr   bool
	}{
		{"match", ck, token, false},
		{"no cookie", nil, token, true},
		{"empty form token", ck, "", true},
		{"different form token", ck, "deadbeef", true},
		{"cookie signed with another key", forged, "attacker", true},
		{"malformed cookie", &http.Cookie{Name: ck.Name, Value: token}, token, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signin/email", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			err := c.Check(req, tt.submitted)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrCSRFMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}
}

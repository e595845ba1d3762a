package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dishdash/dishdash/internal/logging"
	"github.com/dishdash/dishdash/internal/server/auth"
	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/stretchr/testify/require"
)

type issueCall struct {
	email, callbackURL string
}

type fakeAuth struct {
	mu         sync.Mutex
	principals map[string]*models.Principal
	resolves   int

	issueErr error
	issued   []issueCall

	verifySession *models.Session
	verifyErr     error

	signOutErr error
	signedOut  []string

	users   []models.User
	listErr error

	counts    *models.TableCounts
	countsErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{principals: map[string]*models.Principal{}}
}

func (f *fakeAuth) Issue(ctx context.Context, email, callbackURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued = append(f.issued, issueCall{email, callbackURL})
	return f.issueErr
}

func (f *fakeAuth) Verify(ctx context.Context, identifier, token string) (*models.Session, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifySession, nil
}

func (f *fakeAuth) Resolve(ctx context.Context, sessionToken string) *models.Principal {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolves++
	return f.principals[sessionToken]
}

func (f *fakeAuth) SignOut(ctx context.Context, sessionToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.signedOut = append(f.signedOut, sessionToken)
	delete(f.principals, sessionToken)
	return nil
}

func (f *fakeAuth) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.users, f.listErr
}

func (f *fakeAuth) Counts(ctx context.Context) (*models.TableCounts, error) {
	return f.counts, f.countsErr
}

var (
	testCookieKey = []byte("0123456789abcdef0123456789abcdef")
	testCSRFKey   = []byte("fedcba9876543210fedcba9876543210")
)

func newTestServer(t *testing.T) (*Server, *fakeAuth) {
	t.Helper()
	fa := newFakeAuth()
	s, err := NewServer(":0", logging.Nop{}, fa,
		auth.NewSessionCookie(testCookieKey, false),
		auth.NewCSRFCookie(testCSRFKey, false))
	require.NoError(t, err)
	return s, fa
}

var (
	alice = &models.Principal{ID: "u-1", Email: "alice@example.com", Name: "alice", Role: models.RoleUser}
	root  = &models.Principal{ID: "u-2", Email: "admin@dishdash.com", Name: "admin", Role: models.RoleAdmin}
)

// signIn registers p under a fresh session token and returns a cookie for it.
func signIn(t *testing.T, s *Server, fa *fakeAuth, token string, p *models.Principal) *http.Cookie {
	t.Helper()
	fa.principals[token] = p

	rec := httptest.NewRecorder()
	require.NoError(t, s.cookie.Write(rec, token, time.Now().Add(time.Hour)))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func do(s *Server, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

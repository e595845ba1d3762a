package web

import (
	"net/http"
	"net/url"

	"github.com/dishdash/dishdash/internal/server/models"
)

// principal returns the principal resolved by the gate, resolving the
// session cookie itself when the gate did not run.
func (s *Server) principal(r *http.Request) *models.Principal {
	if p, ok := lookupPrincipal(r.Context()); ok {
		return p
	}
	return s.resolve(r)
}

// resolve reads the session cookie and looks the session up. Any failure
// means anonymous.
func (s *Server) resolve(r *http.Request) *models.Principal {
	token, err := s.cookie.Read(r)
	if err != nil {
		return nil
	}
	return s.auth.Resolve(r.Context(), token)
}

// RequireAuth returns the signed-in principal. Otherwise it redirects to the
// sign-in page, asking it to come back to callbackURL when one is given, and
// returns false.
func (s *Server) RequireAuth(w http.ResponseWriter, r *http.Request, callbackURL string) (*models.Principal, bool) {
	if p := s.principal(r); p != nil {
		return p, true
	}

	target := signInPath
	if callbackURL != "" {
		target += "?callbackUrl=" + url.QueryEscape(callbackURL)
	}
	http.Redirect(w, r, target, http.StatusFound)
	return nil, false
}

// RequireAdmin returns the principal when it is an admin. Anonymous
// requests go to the sign-in page and signed-in non-admins to the dashboard.
func (s *Server) RequireAdmin(w http.ResponseWriter, r *http.Request) (*models.Principal, bool) {
	p := s.principal(r)
	if p == nil {
		http.Redirect(w, r, signInPath, http.StatusFound)
		return nil, false
	}
	if !p.IsAdmin() {
		http.Redirect(w, r, dashboardPath, http.StatusFound)
		return nil, false
	}
	return p, true
}

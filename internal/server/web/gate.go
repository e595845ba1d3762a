package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/dishdash/dishdash/internal/server/services"
)

// Access is the classification of a request path.
type Access int

const (
	Public Access = iota
	Protected
)

const (
	signInPath    = "/sign-in"
	dashboardPath = services.DefaultCallbackURL
)

// excludedPrefixes are never gated: assets must load on the sign-in page.
var excludedPrefixes = []string{"/static/", "/favicon.ico"}

// Classify reports whether path is reachable without a session.
func Classify(path string) Access {
	if path == "/" || strings.HasPrefix(path, signInPath) || strings.HasPrefix(path, "/api/auth") {
		return Public
	}
	return Protected
}

// Excluded reports whether the gate skips path entirely.
func Excluded(path string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide returns where the gate sends a request for path, or "" to let it
// through.
func Decide(path string, p *models.Principal) string {
	switch {
	case Classify(path) == Protected && p == nil:
		return signInPath + "?callbackUrl=" + url.QueryEscape(path)
	case strings.HasPrefix(path, signInPath) && p != nil:
		return dashboardPath
	default:
		return ""
	}
}

// gate resolves the session once per request, stores the principal in the
// request context and redirects before routing when Decide says so.
func (s *Server) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Excluded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		p := s.resolve(r)
		if target := Decide(r.URL.Path, p); target != "" {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

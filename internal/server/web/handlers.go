package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/dishdash/dishdash/internal/server/services"
)

// Error codes understood by the sign-in page.
const (
	errorVerification = "Verification"
	errorEmailSignin  = "EmailSignin"
	errorMissingCSRF  = "MissingCSRF"
)

func (s *Server) landingPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "landing", http.StatusOK, pageData{Principal: s.principal(r)})
}

func (s *Server) signInPage(w http.ResponseWriter, r *http.Request) {
	token, err := s.csrf.Token(w, r)
	if err != nil {
		s.logger.Error(r.Context(), "csrf token", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	q := r.URL.Query()
	s.render(w, r, "sign-in", http.StatusOK, pageData{
		CallbackURL: services.SafeCallbackURL(q.Get("callbackUrl")),
		CSRFToken:   token,
		Error:       signInErrorMessage(q.Get("error")),
	})
}

func (s *Server) verifyRequestPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "verify", http.StatusOK, pageData{Email: r.URL.Query().Get("email")})
}

func (s *Server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.RequireAuth(w, r, dashboardPath)
	if !ok {
		return
	}
	s.render(w, r, "dashboard", http.StatusOK, pageData{Principal: p})
}

func (s *Server) adminPage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.RequireAdmin(w, r)
	if !ok {
		return
	}

	list, err := s.auth.ListUsers(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "list users", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	s.render(w, r, "admin", http.StatusOK, pageData{Principal: p, Users: list})
}

// signInEmail requests a magic link for the submitted address. The form
// must carry the token of the CSRF cookie set by the sign-in page.
func (s *Server) signInEmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, signInPath+"?error="+errorEmailSignin, http.StatusSeeOther)
		return
	}
	email := r.PostForm.Get("email")
	callbackURL := services.SafeCallbackURL(r.PostForm.Get("callbackUrl"))

	if err := s.csrf.Check(r, r.PostForm.Get("csrfToken")); err != nil {
		s.logger.Warn(r.Context(), "magic link request rejected", "error", err)
		q := url.Values{"error": {errorMissingCSRF}, "callbackUrl": {callbackURL}}
		http.Redirect(w, r, signInPath+"?"+q.Encode(), http.StatusSeeOther)
		return
	}

	if err := s.auth.Issue(r.Context(), email, callbackURL); err != nil {
		s.logger.Warn(r.Context(), "magic link request failed", "error", err)
		q := url.Values{"error": {errorEmailSignin}, "callbackUrl": {callbackURL}}
		http.Redirect(w, r, signInPath+"?"+q.Encode(), http.StatusSeeOther)
		return
	}

	q := url.Values{"email": {common.NormalizeEmail(email)}}
	http.Redirect(w, r, signInPath+"/verify?"+q.Encode(), http.StatusSeeOther)
}

// callbackEmail redeems a magic link. Links arrive as GET from mail clients;
// POST with the same fields is accepted too.
func (s *Server) callbackEmail(w http.ResponseWriter, r *http.Request) {
	status := http.StatusFound
	if r.Method == http.MethodPost {
		status = http.StatusSeeOther
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, signInPath+"?error="+errorVerification, status)
		return
	}

	session, err := s.auth.Verify(r.Context(), r.Form.Get("email"), r.Form.Get("token"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
			http.Redirect(w, r, signInPath+"?error="+errorVerification, status)
			return
		}
		s.logger.Error(r.Context(), "verify magic link", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if err := s.cookie.Write(w, session.SessionToken, session.Expires); err != nil {
		s.logger.Error(r.Context(), "write session cookie", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, services.SafeCallbackURL(r.Form.Get("callbackUrl")), status)
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	if token, err := s.cookie.Read(r); err == nil {
		if err := s.auth.SignOut(r.Context(), token); err != nil {
			s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
			return
		}
	}
	s.cookie.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// session reports the current principal, or an empty object.
func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	var body any = struct{}{}
	if p := s.principal(r); p != nil {
		body = struct {
			User *models.Principal `json:"user"`
		}{User: p}
	}
	writeJSON(w, http.StatusOK, body)
}

type dbTestResponse struct {
	Status   string              `json:"status"`
	Database string              `json:"database,omitempty"`
	Counts   *models.TableCounts `json:"counts,omitempty"`
	Message  string              `json:"message,omitempty"`
}

func (s *Server) dbTest(w http.ResponseWriter, r *http.Request) {
	counts, err := s.auth.Counts(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "db test", "error", err)
		writeJSON(w, http.StatusInternalServerError, dbTestResponse{Status: "error", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dbTestResponse{Status: "ok", Database: "connected", Counts: counts})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func signInErrorMessage(code string) string {
	switch code {
	case "":
		return ""
	case errorVerification:
		return "The sign in link is no longer valid. It may have been used already or it may have expired."
	case errorEmailSignin:
		return "We could not send the sign in email. Check the address and try again."
	case errorMissingCSRF:
		return "Your sign in form expired. Please try again."
	default:
		return "Unable to sign in."
	}
}

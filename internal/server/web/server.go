// Package web serves the DishDash sign-in flow and the pages behind it over
// HTTP. Every request passes the route gate before routing.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dishdash/dishdash/internal/logging"
	"github.com/dishdash/dishdash/internal/server/auth"
	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// AuthService is the part of services.AuthService the handlers use.
type AuthService interface {
	Issue(ctx context.Context, email, callbackURL string) error
	Verify(ctx context.Context, identifier, token string) (*models.Session, error)
	Resolve(ctx context.Context, sessionToken string) *models.Principal
	SignOut(ctx context.Context, sessionToken string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	Counts(ctx context.Context) (*models.TableCounts, error)
}

type Server struct {
	address string
	auth    AuthService
	cookie  *auth.SessionCookie
	csrf    *auth.CSRFCookie
	logger  logging.Logger
	pages   *pages
	router  chi.Router
}

func NewServer(address string, l logging.Logger, svc AuthService, cookie *auth.SessionCookie, csrf *auth.CSRFCookie) (*Server, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		address: address,
		auth:    svc,
		cookie:  cookie,
		csrf:    csrf,
		logger:  l.With("module", "http_server"),
		pages:   p,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.gate)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles))))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/", s.landingPage)
	r.Get("/sign-in", s.signInPage)
	r.Get("/sign-in/verify", s.verifyRequestPage)
	r.Get("/dashboard", s.dashboardPage)
	r.Get("/admin", s.adminPage)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signin/email", s.signInEmail)
			r.Get("/callback/email", s.callbackEmail)
			r.Post("/callback/email", s.callbackEmail)
			r.Post("/signout", s.signOut)
			r.Get("/session", s.session)
		})
		r.Get("/db-test", s.dbTest)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found.")
	})

	return r
}

// Handler exposes the router, gate included.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled and then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// requestLogger writes one line per request once the response is done.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

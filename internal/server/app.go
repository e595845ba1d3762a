// Package server wires configuration, storage, mail delivery and the HTTP
// layer together and runs them until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/logging"
	"github.com/dishdash/dishdash/internal/server/auth"
	"github.com/dishdash/dishdash/internal/server/config"
	"github.com/dishdash/dishdash/internal/server/mailer"
	"github.com/dishdash/dishdash/internal/server/repositories/repomanager"
	"github.com/dishdash/dishdash/internal/server/services"
	"github.com/dishdash/dishdash/internal/server/web"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	httpServer  *web.Server
}

// NewApp validates c, connects to PostgreSQL, applies migrations and builds
// the services. Configuration problems surface here as common.ErrConfig.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	sender, err := mailer.NewSender(c)
	if err != nil {
		return nil, err
	}

	cookieKey, err := auth.DeriveKey([]byte(c.SecretKey), auth.CookieKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfig, err)
	}

	csrfKey, err := auth.DeriveKey([]byte(c.SecretKey), auth.CSRFKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfig, err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("%w: db init error: %w", common.ErrStorage, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: db ping error: %w", common.ErrStorage, err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	as, err := services.NewAuthService(db, rm, sender, c, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	hs, err := web.NewServer(c.ListenAddr, logger, as,
		auth.NewSessionCookie(cookieKey, c.SecureCookies),
		auth.NewCSRFCookie(csrfKey, c.SecureCookies))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, db: db, authService: as, httpServer: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the HTTP server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runJanitor(ctx, app.authService, app.config.CleanupInterval, app.logger)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "close db", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}

type purger interface {
	PurgeExpired(ctx context.Context) (tokens, sessions int64, err error)
}

// runJanitor deletes expired verification tokens and sessions every
// interval until ctx is done. A non-positive interval disables it.
func runJanitor(ctx context.Context, p purger, interval time.Duration, logger logging.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tokens, sessions, err := p.PurgeExpired(ctx)
			if err != nil {
				logger.Warn(ctx, "purge expired rows", "error", err)
				continue
			}
			if tokens > 0 || sessions > 0 {
				logger.Info(ctx, "purged expired rows", "verification_tokens", tokens, "sessions", sessions)
			}
		}
	}
}

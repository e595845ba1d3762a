// Package services contains server-side business logic. AuthService owns the
// passwordless sign-in flow: issuing magic links, redeeming them into
// sessions and resolving sessions back into principals.
package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/logging"
	"github.com/dishdash/dishdash/internal/server/auth"
	"github.com/dishdash/dishdash/internal/server/config"
	"github.com/dishdash/dishdash/internal/server/mailer"
	"github.com/dishdash/dishdash/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// tokenBytes is the entropy of magic-link and session tokens.
const tokenBytes = 32

// AuthService is constructed once at startup and shared by all handlers.
// It keeps no per-request state.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sender      mailer.Sender
	validate    *validator.Validate
	logger      logging.Logger
	now         func() time.Time

	baseURL       string
	mailFrom      string
	adminEmail    string
	tokenKey      []byte
	tokenMaxAge   time.Duration
	sessionMaxAge time.Duration
}

// NewAuthService wires the service. It fails with common.ErrConfig when the
// secret is missing or no mail sender is available.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, sender mailer.Sender, cfg *config.Config, logger logging.Logger) (*AuthService, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: mail sender is required", common.ErrConfig)
	}
	tokenKey, err := auth.DeriveKey([]byte(cfg.SecretKey), auth.TokenKeyInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfig, err)
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	return &AuthService{
		db:            db,
		repomanager:   m,
		sender:        sender,
		validate:      validator.New(),
		logger:        logger.With("module", "auth"),
		now:           time.Now,
		baseURL:       cfg.BaseURL,
		mailFrom:      cfg.MailFrom,
		adminEmail:    cfg.AdminEmail,
		tokenKey:      tokenKey,
		tokenMaxAge:   cfg.VerificationTokenMaxAge,
		sessionMaxAge: cfg.SessionMaxAge,
	}, nil
}

// SessionMaxAge is the fixed lifetime of sessions created by Verify.
func (s *AuthService) SessionMaxAge() time.Duration {
	return s.sessionMaxAge
}

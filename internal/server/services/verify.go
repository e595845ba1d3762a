package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/dbx"
	"github.com/dishdash/dishdash/internal/server/auth"
	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/dishdash/dishdash/internal/server/repositories/users"
)

// Verify redeems a magic link and opens a session.
//
// The token row is deleted by the lookup itself, so a link can be redeemed
// at most once even under concurrent requests, and an expired link is gone
// after the first attempt. The user, its role and the session are then
// written in one transaction, in that order.
//
// Errors: common.ErrInvalidToken when no matching row exists,
// common.ErrTokenExpired when it had expired, common.ErrStorage otherwise.
func (s *AuthService) Verify(ctx context.Context, identifier, token string) (*models.Session, error) {
	identifier = common.NormalizeEmail(identifier)
	if identifier == "" || token == "" {
		return nil, common.ErrInvalidToken
	}

	vt, err := s.repomanager.VerificationTokens(s.db).Consume(ctx, identifier, auth.HashToken(token, s.tokenKey))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "consume verification token", "email", identifier, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	now := s.now()
	if vt.Expired(now) {
		s.logger.Info(ctx, "expired magic link used", "email", identifier, "expired", vt.Expires)
		return nil, common.ErrTokenExpired
	}

	sessionToken, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	var session *models.Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repomanager.Users(tx)

		user, err := usersRepo.EnsureByEmail(ctx, identifier, common.EmailLocalPart(identifier))
		if err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}

		if err := s.provisionRole(ctx, usersRepo, user); err != nil {
			return err
		}

		session = &models.Session{
			SessionToken: sessionToken,
			UserID:       user.ID,
			Expires:      now.Add(s.sessionMaxAge),
		}
		if err := s.repomanager.Sessions(tx).Create(ctx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "establish session", "email", identifier, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	s.logger.Info(ctx, "signed in", "user_id", session.UserID)
	return session, nil
}

// provisionRole assigns the role of a user that has none. A role, once set,
// is never re-evaluated, even if the configured admin address changes.
func (s *AuthService) provisionRole(ctx context.Context, repo users.Repository, u *models.User) error {
	if u.Role != "" {
		return nil
	}

	role := models.RoleFor(u.Email, s.adminEmail)
	applied, err := repo.SetRoleIfUnset(ctx, u.ID, role)
	if err != nil {
		return fmt.Errorf("provision role: %w", err)
	}
	if applied {
		u.Role = role
		s.logger.Info(ctx, "role provisioned", "user_id", u.ID, "role", role)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/server/models"
)

// Resolve maps a session token to the signed-in principal. It never fails:
// a missing, expired or orphaned session resolves to nil. Storage errors and
// orphans are logged.
func (s *AuthService) Resolve(ctx context.Context, sessionToken string) *models.Principal {
	if sessionToken == "" {
		return nil
	}

	sessions := s.repomanager.Sessions(s.db)
	session, err := sessions.Find(ctx, sessionToken)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "find session", "error", err)
		}
		return nil
	}

	if session.Expired(s.now()) {
		if err := sessions.Delete(ctx, sessionToken); err != nil {
			s.logger.Warn(ctx, "delete expired session", "error", err)
		}
		return nil
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "session without user", "user_id", session.UserID)
		} else {
			s.logger.Error(ctx, "load session user", "user_id", session.UserID, "error", err)
		}
		return nil
	}

	return models.NewPrincipal(user)
}

// SignOut destroys the session. Unknown tokens are not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.repomanager.Sessions(s.db).Delete(ctx, sessionToken); err != nil {
		s.logger.Error(ctx, "delete session", "error", err)
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

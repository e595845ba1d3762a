package services

import (
	"context"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/server/models"
)

// PurgeExpired deletes verification tokens and sessions past their expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) (tokens, sessions int64, err error) {
	now := s.now()

	tokens, err = s.repomanager.VerificationTokens(s.db).DeleteExpired(ctx, now)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	sessions, err = s.repomanager.Sessions(s.db).DeleteExpired(ctx, now)
	if err != nil {
		return tokens, 0, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return tokens, sessions, nil
}

// ListUsers returns all users, oldest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return list, nil
}

// Counts reports row counts for the diagnostics endpoint.
func (s *AuthService) Counts(ctx context.Context) (*models.TableCounts, error) {
	c, err := s.repomanager.Stats(s.db).Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return c, nil
}

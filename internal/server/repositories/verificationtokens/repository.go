// Package verificationtokens stores pending magic-link tokens.
package verificationtokens

import (
	"context"
	"time"

	"github.com/dishdash/dishdash/internal/server/models"
)

type Repository interface {
	// Create persists a pending token row.
	Create(ctx context.Context, vt *models.VerificationToken) error

	// Consume atomically deletes the row matching (identifier, token) and
	// returns it. At most one concurrent caller observes the row; every
	// other caller gets common.ErrorNotFound.
	Consume(ctx context.Context, identifier, token string) (*models.VerificationToken, error)

	// DeleteExpired removes rows that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

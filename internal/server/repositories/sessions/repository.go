// Package sessions declares the repository contract for database-backed
// login sessions.
package sessions

import (
	"context"
	"time"

	"github.com/dishdash/dishdash/internal/server/models"
)

// Repository defines operations for creating, looking up and revoking sessions.
type Repository interface {
	// Create stores s and fills in its generated ID.
	Create(ctx context.Context, s *models.Session) error

	// Find looks up a session by its opaque token.
	// Implementations return common.ErrorNotFound when it is absent.
	Find(ctx context.Context, sessionToken string) (*models.Session, error)

	// Delete removes a session. Deleting a non-existent session is not an error.
	Delete(ctx context.Context, sessionToken string) error

	// DeleteExpired removes every session that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Package stats reports table row counts for the diagnostics endpoint.
package stats

import (
	"context"

	"github.com/dishdash/dishdash/internal/server/models"
)

type Repository interface {
	Counts(ctx context.Context) (*models.TableCounts, error)
}

package stats

import (
	"context"
	"fmt"

	"github.com/dishdash/dishdash/internal/dbx"
	"github.com/dishdash/dishdash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Counts(ctx context.Context) (*models.TableCounts, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM restaurants),
			(SELECT count(*) FROM friends)
	`
	c := &models.TableCounts{}
	if err := r.db.QueryRowContext(ctx, query).Scan(&c.Users, &c.Restaurants, &c.Friends); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

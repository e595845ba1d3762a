package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/dbx"
	"github.com/dishdash/dishdash/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (session_token, user_id, expires)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, s.SessionToken, s.UserID, s.Expires).Scan(&s.ID); err != nil {
		// the user was deleted between lookup and insert
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("user %s: %w", s.UserID, common.ErrorNotFound)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, sessionToken string) (*models.Session, error) {
	query := `
		SELECT id, session_token, user_id, expires
		FROM sessions
		WHERE session_token = $1
	`
	s := &models.Session{}
	if err := r.db.QueryRowContext(ctx, query, sessionToken).Scan(&s.ID, &s.SessionToken, &s.UserID, &s.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, sessionToken string) error {
	query := `
		DELETE FROM sessions
		WHERE session_token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, sessionToken); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires <= $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

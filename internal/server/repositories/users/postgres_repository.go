package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/dbx"
	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/google/uuid"
)

// newID is a seam for tests.
var newID = uuid.NewString

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user models.User
		role sql.NullString
	)
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	if role.Valid {
		user.Role = models.Role(role.String)
	}
	return &user, nil
}

func (r *PostgresRepository) EnsureByEmail(ctx context.Context, email, name string) (*models.User, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	query :=
		`INSERT INTO users (id, email, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		 RETURNING id, email, name, role, created_at, updated_at
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, newID(), email, name))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, name, role, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) SetRoleIfUnset(ctx context.Context, id string, role models.Role) (bool, error) {
	query :=
		`UPDATE users SET role = $2, updated_at = now()
		 WHERE id = $1 AND role IS NULL
		 `

	res, err := r.db.ExecContext(ctx, query, id, string(role))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n == 1, nil
}

func (r *PostgresRepository) CreateWithRole(ctx context.Context, email, name string, role models.Role) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email, name, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, name, role, created_at, updated_at
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, newID(), email, name, string(role)))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT id, email, name, role, created_at, updated_at FROM users
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

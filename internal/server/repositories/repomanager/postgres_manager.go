package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/dbx"
	"github.com/dishdash/dishdash/internal/server/migrations"
	"github.com/dishdash/dishdash/internal/server/repositories/sessions"
	"github.com/dishdash/dishdash/internal/server/repositories/stats"
	"github.com/dishdash/dishdash/internal/server/repositories/users"
	"github.com/dishdash/dishdash/internal/server/repositories/verificationtokens"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var gooseUpContext = goose.UpContext

type PostgresRepositoryManager struct {
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) VerificationTokens(db dbx.DBTX) verificationtokens.Repository {
	return verificationtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%w: migrate: %w", common.ErrStorage, err)
	}

	return nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

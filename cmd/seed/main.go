// Command seed creates the DishDash admin account.
//
// Environment: DATABASE_URL, ADMIN_EMAIL, ADMIN_NAME and SEED_MODE. Only the
// minimal mode is supported; it applies migrations and inserts the admin.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dishdash/dishdash/internal/logging"
	"github.com/dishdash/dishdash/internal/server/config"
	"github.com/dishdash/dishdash/internal/server/repositories/repomanager"
	"github.com/dishdash/dishdash/internal/server/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if mode := os.Getenv("SEED_MODE"); mode != "" && mode != "minimal" {
		logger.Warn(ctx, "unsupported seed mode, seeding admin only", "mode", mode)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	email := seed.AdminEmail(cfg.AdminEmail)
	created, err := seed.Admin(ctx, rm.Users(db), email, os.Getenv("ADMIN_NAME"))
	if err != nil {
		return err
	}

	if created {
		logger.Info(ctx, "admin user created", "email", email)
	} else {
		logger.Info(ctx, "admin user already exists, skipping seed", "email", email)
	}
	return nil
}

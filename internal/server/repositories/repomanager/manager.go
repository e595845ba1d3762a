// Package repomanager vends repositories bound to a pool or a transaction
// and owns the schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dishdash/dishdash/internal/dbx"
	"github.com/dishdash/dishdash/internal/server/repositories/sessions"
	"github.com/dishdash/dishdash/internal/server/repositories/stats"
	"github.com/dishdash/dishdash/internal/server/repositories/users"
	"github.com/dishdash/dishdash/internal/server/repositories/verificationtokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	VerificationTokens(db dbx.DBTX) verificationtokens.Repository
	Stats(db dbx.DBTX) stats.Repository
}

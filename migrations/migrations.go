// Package migrations embeds the catalog schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
	"github.com/samber/oops"
)

// FS contains the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS

// Run applies all pending migrations. dialect is a goose dialect name
// ("sqlite3" or "postgres").
func Run(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return oops.With("dialect", dialect, "context", "set goose dialect").Wrap(err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return oops.With("dialect", dialect, "context", "run migrations").Wrap(err)
	}
	return nil
}

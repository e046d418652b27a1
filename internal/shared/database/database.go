// Package database opens the SQL catalog database and keeps its schema current.
package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/migrations"
	"github.com/samber/oops"
	_ "modernc.org/sqlite"
)

// TimeLayout is how timestamps are stored. Fixed width, so it sorts lexically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

func init() {
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Open connects to driver/dsn and applies pending migrations.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case config.DriverSQLite:
		return openSQLite(ctx, dsn)
	case config.DriverPostgres:
		return openPostgres(ctx, dsn)
	default:
		return nil, oops.With("driver", driver).Errorf("unsupported database driver")
	}
}

func openSQLite(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if path := sqlitePath(dsn); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, oops.With("dsn", dsn, "context", "failed to create database directory").Wrap(err)
		}
	}

	db, err := sqlx.Open(config.DriverSQLite, dsn)
	if err != nil {
		return nil, oops.With("dsn", dsn, "context", "open sqlite").Wrap(err)
	}
	// one connection: keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, oops.With("pragma", pragma).Wrap(err)
		}
	}

	if err := migrations.Run(ctx, db.DB, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func openPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(config.DriverPostgres, dsn)
	if err != nil {
		return nil, oops.With("context", "open postgres").Wrap(err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, oops.With("context", "ping postgres").Wrap(err)
	}
	if err := migrations.Run(ctx, db.DB, "postgres"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqlitePath returns the file behind a sqlite DSN, or "" for in-memory databases.
func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	return path
}

// FormatTime renders t in TimeLayout (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp. Malformed values give the zero time.
func ParseTime(s string) time.Time {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

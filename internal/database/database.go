// Package database owns the SQLite handle and the embedded schema.
package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// pragmas applied to every connection. WAL keeps the snapshot executor's
// checkpoint cheap; the busy timeout covers writers racing the API.
const pragmas = "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// DSN builds the driver connection string for a database file.
func DSN(path string) string {
	return path + "?" + pragmas
}

// Open opens the SQLite database at path and brings its schema up to date.
// A fresh file (or ":memory:") comes back fully migrated.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

// Migrate applies any embedded migrations not yet recorded in db. Safe to
// call on an already current schema.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

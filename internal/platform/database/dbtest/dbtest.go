// Package dbtest opens migrated in-memory sqlite databases for tests.
package dbtest

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"nexus/internal/platform/database"
)

// New returns an isolated, fully migrated database with foreign keys enforced.
// The pool is pinned to one connection because every sqlite :memory:
// connection is its own database.
func New(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate db: %v", err)
	}
	return db
}

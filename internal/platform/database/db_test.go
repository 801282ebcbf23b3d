package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver(t *testing.T) {
	tests := []struct {
		url        string
		wantDriver string
		wantDSN    string
	}{
		{"postgres://u:p@db.example.co:5432/postgres", "pgx", "postgres://u:p@db.example.co:5432/postgres"},
		{"postgresql://localhost/nexus", "pgx", "postgresql://localhost/nexus"},
		{"file:nexus.db", "sqlite3", "nexus.db"},
		{"file::memory:?cache=shared", "sqlite3", "file::memory:?cache=shared"},
		{"/var/lib/nexus/nexus.db", "sqlite3", "/var/lib/nexus/nexus.db"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dsn := Driver(tt.url)
			assert.Equal(t, tt.wantDriver, driver)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 3, count)

	for _, table := range []string{"clients", "projects", "invoices", "proposals", "portfolio_items", "testimonials", "client_logos", "general_settings", "social_links"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

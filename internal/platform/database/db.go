package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // hosted Postgres
	_ "github.com/mattn/go-sqlite3"    // local development and tests
	"nexus/internal/platform/config"
)

// Driver picks the database/sql driver for url and returns the DSN to hand
// it. postgres:// and postgresql:// URLs go to pgx; anything else is a sqlite
// path, with an optional "file:" prefix.
func Driver(url string) (driver, dsn string) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "pgx", url
	}

	dsn = url
	if strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, "?") {
		dsn = dsn[5:]
	}
	return "sqlite3", dsn
}

func New(cfg config.DatabaseConfig) (*sql.DB, error) {
	driver, dsn := Driver(cfg.URL)

	if driver == "sqlite3" && !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

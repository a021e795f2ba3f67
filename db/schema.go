// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to a database of the given type and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == TypeSQLite {
		// SQLite allows one writer; a single connection also keeps
		// :memory: databases alive across queries.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// Rebind rewrites ? placeholders to $1, $2, ... for postgres.
// Queries are written with ? so they run unchanged on SQLite.
func Rebind(dbType, query string) string {
	if dbType != TypePostgres {
		return query
	}
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types and syntax shared by SQLite and PostgreSQL.
const schema = `
-- Aggregate figures (single row)
CREATE TABLE IF NOT EXISTS campaign_overall (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    raised DOUBLE PRECISION NOT NULL DEFAULT 0,
    goal DOUBLE PRECISION NOT NULL DEFAULT 0,
    donors INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Phases
CREATE TABLE IF NOT EXISTS phase (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    raised DOUBLE PRECISION NOT NULL DEFAULT 0,
    goal DOUBLE PRECISION NOT NULL DEFAULT 0,
    donors INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Contact form submissions
CREATE TABLE IF NOT EXISTS contact_submission (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    country TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL DEFAULT '',
    custom_amount TEXT NOT NULL DEFAULT '',
    chosen TEXT NOT NULL DEFAULT '[]',
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_contact_submission_created_at ON contact_submission(created_at);
`

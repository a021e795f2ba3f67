// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Drivers

Open accepts the DATABASE_TYPE values:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

	conn, err := db.Open(db.TypeSQLite, "file:fundpage.db")

# Placeholders

Queries are written with ? placeholders and passed through Rebind, which
numbers them ($1, $2, ...) for postgres:

	conn.QueryRow(db.Rebind(dbType, "SELECT name FROM phase WHERE id = ?"), id)

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - campaign_overall: single row of aggregate figures (id = 1)
  - phase: per-phase name, raised, goal, donors
  - contact_submission: recorded support form posts; chosen items as a JSON array
*/
package db

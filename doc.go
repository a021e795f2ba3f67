// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the fundpage server.

fundpage serves a fundraising campaign page: overall progress, one card per
funding phase with a lock chain between phases, and a support form that
opens a pre-filled email draft.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=fundpage.db ADMIN_KEY_SALT=... IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Print the admin key for the configured campaign:

	go run . -print-admin-key

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - IP_HASH_SALT (-ip-salt): Secret for hashing submitter IPs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATA_URL (-data-url): Render the page from a remote data.json
  - TEMPLATE_PATH, CHAIN_PATH: Override the embedded page and phase chain
  - MAIL_RECIPIENT, MAIL_SUBJECT: Support form email target
  - LOG_LEVEL (-log-level): debug, info, warn or error

A .env file in the working directory is loaded when present.

# Architecture

  - handlers: HTTP request handlers (page, snapshot, admin, contact)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - loader: Snapshot sources and the load-then-render step
  - render: Writes figures and lock state into the page
  - progress: Percentages, currency, phase chain
  - contact: Support form to mailto link
  - dom: Document interface and its x/net/html implementation
  - page: Embedded template
  - models: Request/response and snapshot types
  - auth: Admin key and IP hashing
  - db: Connection and schema
  - cliparse: Configuration parsing
  - logging: slog handler selection

The cmd/fundpage-render binary renders the page to a static file.

See package documentation for each component.
*/
package main

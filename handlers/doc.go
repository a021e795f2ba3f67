// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the fundraising page.

# Handler Types

Each handler is a struct with its dependencies:

  - PageHandler: Renders the page template from a snapshot source
  - SnapshotHandler: Reads figures from the database, serves data.json
  - AdminHandler: Updates overall and phase figures, lists contacts
  - ContactHandler: Turns the support form into a mailto link

Database-backed handlers are created via constructors that accept *sql.DB
and Config:

	snapshotHandler := handlers.NewSnapshotHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg, chain)

# Page Rendering

	GET / → ServePage

SnapshotHandler satisfies loader.Source, so the page can be rendered from
the database or from any other source:

	pageHandler := handlers.NewPageHandler(tmpl, snapshotHandler, render.New(chain))

When the snapshot cannot be loaded the template is served untouched.

# Admin Operations

	PUT /admin/overall      → UpdateOverall
	PUT /admin/phases/{id}  → UpdatePhase (id must be in the chain)
	GET /admin/contacts     → ListContacts (?limit=N, default 50, max 500)

Admin operations require the X-Admin-Key header, derived from CAMPAIGN_ID
and ADMIN_KEY_SALT. Updates are partial: omitted fields keep their stored
value. Negative figures are rejected.

# Contact Form

	POST /contact → Submit

Answers 303 See Other with the mailto link as Location, or
{"id": ..., "mailto": ...} when the client sends Accept: application/json.
The submission is stored with a hashed IP; storage failures are logged and
do not affect the reply.
*/
package handlers

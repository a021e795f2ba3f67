// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the fundraising page server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, chain, tmpl)

# Endpoints

Health:

	GET /health

Public:

	GET  /           - Rendered campaign page
	GET  /data.json  - Current snapshot
	POST /contact    - Support form, redirects to a mailto link

Figures management (admin, requires X-Admin-Key):

	PUT /admin/overall      - Set aggregate figures
	PUT /admin/phases/{id}  - Set one phase
	GET /admin/contacts     - Recorded support form posts

# Snapshot Source

The page is rendered from the database unless DATA_URL is configured, in
which case every page request fetches that URL with FETCH_TIMEOUT.
data.json always reflects the database.
*/
package router

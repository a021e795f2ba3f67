// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type (sqlite or postgres)
	-admin-salt       Admin key salt
	-ip-salt          IP hash salt
	-campaign         Campaign ID
	-data-url         External data.json URL
	-template         Page template path
	-chain            Phase chain YAML path
	-mail-to          Contact form recipient
	-mail-subject     Contact form subject
	-fetch-timeout    Snapshot fetch timeout
	-env              Environment file (default .env)
	-print-admin-key  Print the admin key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p (default 3318)
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t (default sqlite)
	ADMIN_KEY_SALT → -admin-salt
	IP_HASH_SALT   → -ip-salt
	CAMPAIGN_ID    → -campaign (default "campaign")
	DATA_URL       → -data-url
	TEMPLATE_PATH  → -template
	CHAIN_PATH     → -chain
	MAIL_RECIPIENT → -mail-to
	MAIL_SUBJECT   → -mail-subject
	FETCH_TIMEOUT  → -fetch-timeout (default 5s)

CLI flags take precedence over environment variables. Before the fallback
runs, the -env file is loaded with godotenv; it never overrides variables
that are already set, and a missing file is ignored.

# Validation

ParseFlags returns an error if DATABASE_URL, ADMIN_KEY_SALT or IP_HASH_SALT
is missing, or if a numeric or duration value does not parse.
*/
package cliparse

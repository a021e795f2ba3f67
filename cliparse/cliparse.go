// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	IPHashSalt   string

	CampaignID   string
	DataURL      string
	TemplatePath string
	ChainPath    string

	MailRecipient string
	MailSubject   string
	FetchTimeout  time.Duration

	LogLevel      string
	EnvFile       string
	PrintAdminKey bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("fundpage", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	// Page
	fs.StringVar(&cfg.CampaignID, "campaign", "", "Campaign ID used to derive the admin key")
	fs.StringVar(&cfg.DataURL, "data-url", "", "External data.json URL (default: serve from database)")
	fs.StringVar(&cfg.TemplatePath, "template", "", "Page template path (default: embedded)")
	fs.StringVar(&cfg.ChainPath, "chain", "", "Phase chain YAML path (default: built-in)")
	fs.StringVar(&cfg.MailRecipient, "mail-to", "", "Contact form recipient")
	fs.StringVar(&cfg.MailSubject, "mail-subject", "", "Contact form subject")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 0, "Snapshot fetch timeout")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Environment file to load if present")
	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the admin key and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := LoadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	// Optional settings
	fallback(&cfg.CampaignID, "CAMPAIGN_ID", "campaign")
	fallback(&cfg.DataURL, "DATA_URL", "")
	fallback(&cfg.TemplatePath, "TEMPLATE_PATH", "")
	fallback(&cfg.ChainPath, "CHAIN_PATH", "")
	fallback(&cfg.MailRecipient, "MAIL_RECIPIENT", "")
	fallback(&cfg.MailSubject, "MAIL_SUBJECT", "")
	fallback(&cfg.LogLevel, "LOG_LEVEL", "info")

	if cfg.FetchTimeout == 0 {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid FETCH_TIMEOUT env variable")
			}
			cfg.FetchTimeout = d
		} else {
			cfg.FetchTimeout = 5 * time.Second
		}
	}

	return cfg, nil
}

// fallback fills an unset field from the environment, then from def.
func fallback(field *string, env, def string) {
	if *field != "" {
		return
	}
	if v := os.Getenv(env); v != "" {
		*field = v
		return
	}
	*field = def
}

// LoadEnvFile loads KEY=value pairs without overriding variables that are
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

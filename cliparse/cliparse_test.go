// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("IP_HASH_SALT", "test-ip-salt")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_URL", "https://example.org/data.json")
	t.Setenv("FETCH_TIMEOUT", "2s")

	cfg, err := ParseFlags([]string{"-env", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DataURL != "https://example.org/data.json" {
		t.Errorf("unexpected data URL %q", cfg.DataURL)
	}
	if cfg.FetchTimeout != 2*time.Second {
		t.Errorf("expected 2s fetch timeout, got %v", cfg.FetchTimeout)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("CAMPAIGN_ID", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := ParseFlags([]string{"-env", ""})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite default, got %q", cfg.DatabaseType)
	}
	if cfg.CampaignID != "campaign" {
		t.Errorf("expected default campaign id, got %q", cfg.CampaignID)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("expected 5s default timeout, got %v", cfg.FetchTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info log level, got %q", cfg.LogLevel)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-env", "", "-p", "8080", "-d", "file:other.db", "-admin-salt", "s1", "-ip-salt", "s2", "-campaign", "spring"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:other.db" {
		t.Errorf("CLI should override env: got %q", cfg.DatabaseURL)
	}
	if cfg.CampaignID != "spring" {
		t.Errorf("expected campaign spring, got %q", cfg.CampaignID)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"database url", "DATABASE_URL"},
		{"admin salt", "ADMIN_KEY_SALT"},
		{"ip salt", "IP_HASH_SALT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			if _, err := ParseFlags([]string{"-env", ""}); err == nil {
				t.Errorf("expected error when %s is missing", tt.unset)
			}
		})
	}
}

func TestParseFlags_InvalidValues(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("PORT", "abc")
	if _, err := ParseFlags([]string{"-env", ""}); err == nil {
		t.Error("expected error for invalid PORT")
	}
	t.Setenv("PORT", "")

	if _, err := ParseFlags([]string{"-env", "", "-t", "mysql"}); err == nil {
		t.Error("expected error for unsupported database type")
	}

	t.Setenv("FETCH_TIMEOUT", "soon")
	if _, err := ParseFlags([]string{"-env", ""}); err == nil {
		t.Error("expected error for invalid FETCH_TIMEOUT")
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAIL_RECIPIENT", "")
	t.Setenv("LOG_LEVEL", "")
	// godotenv sets variables with os.Setenv; restore afterwards
	t.Cleanup(func() {
		os.Unsetenv("MAIL_RECIPIENT")
		os.Unsetenv("LOG_LEVEL")
	})

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("MAIL_RECIPIENT=team@example.org\nIP_HASH_SALT=from-file\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("MAIL_RECIPIENT")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MailRecipient != "team@example.org" {
		t.Errorf("expected recipient from env file, got %q", cfg.MailRecipient)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from env file, got %q", cfg.LogLevel)
	}
	// Existing environment wins over the file
	if cfg.IPHashSalt != "test-ip-salt" {
		t.Errorf("env file must not override existing env, got %q", cfg.IPHashSalt)
	}

	if _, err := ParseFlags([]string{"-env", filepath.Join(t.TempDir(), "absent.env")}); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/fundpage/auth"
	"github.com/danielhkuo/fundpage/cliparse"
	"github.com/danielhkuo/fundpage/db"
)

// TestDBURL is an in-memory SQLite database private to one connection
const TestDBURL = ":memory:"

// SetupTestDB opens a fresh in-memory database with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		AdminKeySalt:  "test-admin-salt",
		IPHashSalt:    "test-ip-salt",
		CampaignID:    "test-campaign",
		MailRecipient: "team@example.org",
		MailSubject:   "Hello",
	}
}

// AdminHeaders returns the headers that authorize admin requests for cfg
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		auth.AdminKeyHeader: auth.GenerateAdminKey(cfg.CampaignID, cfg.AdminKeySalt),
	}
}

// SeedOverall stores the aggregate figures
func SeedOverall(t *testing.T, conn *sql.DB, raised, goal float64, donors int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO campaign_overall (id, raised, goal, donors)
		VALUES (1, ?, ?, ?)
	`, raised, goal, donors)
	if err != nil {
		t.Fatalf("Failed to seed overall figures: %v", err)
	}
}

// SeedPhase stores one phase record
func SeedPhase(t *testing.T, conn *sql.DB, id, name string, raised, goal float64, donors int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO phase (id, name, raised, goal, donors)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, raised, goal, donors)
	if err != nil {
		t.Fatalf("Failed to seed phase: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded HTTP test request
func MakeFormRequest(method, path string, form url.Values, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

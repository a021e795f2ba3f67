// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/danielhkuo/fundpage/auth"
	"github.com/danielhkuo/fundpage/cliparse"
	"github.com/danielhkuo/fundpage/db"
	"github.com/danielhkuo/fundpage/middleware"
	"github.com/danielhkuo/fundpage/models"
	"github.com/danielhkuo/fundpage/progress"
)

// Contact listing bounds
const (
	DefaultContactLimit = 50
	MaxContactLimit     = 500
)

type AdminHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	chain progress.Chain
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, chain progress.Chain) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, chain: chain}
}

// authorize writes a 401 and returns false when the admin key is wrong.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get(auth.AdminKeyHeader)
	if err := auth.ValidateAdminKey(h.cfg.CampaignID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

func (h *AdminHandler) q(query string) string {
	return db.Rebind(h.cfg.DatabaseType, query)
}

// UpdateOverall handles PUT /admin/overall
// Omitted fields keep their stored value.
func (h *AdminHandler) UpdateOverall(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.UpdateOverallRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validateFigures(req.Raised, req.Goal, req.Donors); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var overall models.AggregateRecord
	err = tx.QueryRowContext(r.Context(), `
		SELECT raised, goal, donors FROM campaign_overall WHERE id = 1
	`).Scan(&overall.Raised, &overall.Goal, &overall.Donors)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to query overall figures", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Raised != nil {
		overall.Raised = *req.Raised
	}
	if req.Goal != nil {
		overall.Goal = *req.Goal
	}
	if req.Donors != nil {
		overall.Donors = *req.Donors
	}

	_, err = tx.ExecContext(r.Context(), h.q(`
		INSERT INTO campaign_overall (id, raised, goal, donors, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			raised = excluded.raised,
			goal = excluded.goal,
			donors = excluded.donors,
			updated_at = excluded.updated_at
	`), overall.Raised, overall.Goal, overall.Donors, time.Now().UTC())
	if err != nil {
		slog.Error("failed to upsert overall figures", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update figures")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update figures")
		return
	}

	slog.Info("overall figures updated",
		"raised", progress.FormatUSD(overall.Raised),
		"goal", progress.FormatUSD(overall.Goal),
		"donors", overall.Donors,
	)

	middleware.JSONResponse(w, http.StatusOK, overall)
}

// UpdatePhase handles PUT /admin/phases/{id}
// Only phases named by the chain can be stored.
func (h *AdminHandler) UpdatePhase(w http.ResponseWriter, r *http.Request) {
	phaseID := r.PathValue("id")
	if phaseID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "phase id is required")
		return
	}

	if !h.authorize(w, r) {
		return
	}

	if !slices.Contains(h.chain.Order, phaseID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown phase")
		return
	}

	var req models.UpdatePhaseRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validateFigures(req.Raised, req.Goal, req.Donors); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var phase models.PhaseRecord
	err = tx.QueryRowContext(r.Context(), h.q(`
		SELECT name, raised, goal, donors FROM phase WHERE id = ?
	`), phaseID).Scan(&phase.Name, &phase.Raised, &phase.Goal, &phase.Donors)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to query phase", "error", err, "phase_id", phaseID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Name != nil {
		phase.Name = *req.Name
	}
	if req.Raised != nil {
		phase.Raised = *req.Raised
	}
	if req.Goal != nil {
		phase.Goal = *req.Goal
	}
	if req.Donors != nil {
		phase.Donors = *req.Donors
	}

	_, err = tx.ExecContext(r.Context(), h.q(`
		INSERT INTO phase (id, name, raised, goal, donors, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			raised = excluded.raised,
			goal = excluded.goal,
			donors = excluded.donors,
			updated_at = excluded.updated_at
	`), phaseID, phase.Name, phase.Raised, phase.Goal, phase.Donors, time.Now().UTC())
	if err != nil {
		slog.Error("failed to upsert phase", "error", err, "phase_id", phaseID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update phase")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update phase")
		return
	}

	slog.Info("phase updated",
		"phase_id", phaseID,
		"percent", progress.Pct(phase.Raised, phase.Goal),
		"completed", progress.Completed(phase),
	)

	middleware.JSONResponse(w, http.StatusOK, models.UpdatePhaseResponse{
		ID:    phaseID,
		Phase: phase,
	})
}

// ListContacts handles GET /admin/contacts?limit=N
// Newest submissions come first.
func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	limit := DefaultContactLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxContactLimit)
	}

	rows, err := h.db.QueryContext(r.Context(), h.q(`
		SELECT id, name, email, country, message, custom_amount, chosen, created_at
		FROM contact_submission
		ORDER BY created_at DESC, id
		LIMIT ?
	`), limit)
	if err != nil {
		slog.Error("failed to query contacts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	contacts := []models.ContactSubmission{}
	for rows.Next() {
		var c models.ContactSubmission
		var chosen string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Country, &c.Message, &c.CustomAmount, &chosen, &c.CreatedAt); err != nil {
			slog.Error("failed to scan contact", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if err := json.Unmarshal([]byte(chosen), &c.Chosen); err != nil {
			slog.Warn("malformed chosen list", "contact_id", c.ID, "error", err)
		}
		if c.Chosen == nil {
			c.Chosen = []string{}
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read contacts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ContactListResponse{
		Contacts: contacts,
		Count:    len(contacts),
	})
}

// validateFigures returns a message for the first negative value, or "".
func validateFigures(raised, goal *float64, donors *int) string {
	switch {
	case raised != nil && *raised < 0:
		return "raised must not be negative"
	case goal != nil && *goal < 0:
		return "goal must not be negative"
	case donors != nil && *donors < 0:
		return "donors must not be negative"
	}
	return ""
}

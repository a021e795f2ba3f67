// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fundpage/cliparse"
	"github.com/danielhkuo/fundpage/middleware"
	"github.com/danielhkuo/fundpage/models"
)

type SnapshotHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSnapshotHandler(db *sql.DB, cfg cliparse.Config) *SnapshotHandler {
	return &SnapshotHandler{db: db, cfg: cfg}
}

// Snapshot reads the current figures from the database. It satisfies
// loader.Source so the page can be rendered straight from storage.
func (h *SnapshotHandler) Snapshot(ctx context.Context) (models.CampaignSnapshot, error) {
	snap := models.CampaignSnapshot{Phases: map[string]models.PhaseRecord{}}

	err := h.db.QueryRowContext(ctx, `
		SELECT raised, goal, donors FROM campaign_overall WHERE id = 1
	`).Scan(&snap.Overall.Raised, &snap.Overall.Goal, &snap.Overall.Donors)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("failed to query overall figures: %w", err)
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, name, raised, goal, donors FROM phase ORDER BY id
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to query phases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var p models.PhaseRecord
		if err := rows.Scan(&id, &p.Name, &p.Raised, &p.Goal, &p.Donors); err != nil {
			return snap, fmt.Errorf("failed to scan phase: %w", err)
		}
		snap.Phases[id] = p
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("failed to read phases: %w", err)
	}

	return snap, nil
}

// GetSnapshot handles GET /data.json
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to build snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	middleware.JSONResponse(w, http.StatusOK, snap)
}

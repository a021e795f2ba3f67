// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fundpage/cliparse"
	"github.com/danielhkuo/fundpage/handlers"
	"github.com/danielhkuo/fundpage/loader"
	"github.com/danielhkuo/fundpage/middleware"
	"github.com/danielhkuo/fundpage/progress"
	"github.com/danielhkuo/fundpage/render"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, chain progress.Chain, template []byte) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	snapshotHandler := handlers.NewSnapshotHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg, chain)
	contactHandler := handlers.NewContactHandler(db, cfg)

	// The page reads from DATA_URL when set, otherwise from the database
	var source loader.Source = snapshotHandler
	if cfg.DataURL != "" {
		slog.Info("page snapshots fetched remotely", "url", cfg.DataURL, "timeout", cfg.FetchTimeout)
		source = loader.NewHTTPSource(cfg.DataURL, cfg.FetchTimeout)
	}
	pageHandler := handlers.NewPageHandler(template, source, render.New(chain))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public page and data
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.ServePage))
	mux.HandleFunc("GET /data.json", middleware.WithLogging(snapshotHandler.GetSnapshot))
	mux.HandleFunc("POST /contact", middleware.WithLogging(contactHandler.Submit))

	// Figures management (admin operations)
	mux.HandleFunc("PUT /admin/overall", middleware.WithLogging(adminHandler.UpdateOverall))
	mux.HandleFunc("PUT /admin/phases/{id}", middleware.WithLogging(adminHandler.UpdatePhase))
	mux.HandleFunc("GET /admin/contacts", middleware.WithLogging(adminHandler.ListContacts))

	return mux
}

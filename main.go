// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/fundpage/auth"
	"github.com/danielhkuo/fundpage/cliparse"
	"github.com/danielhkuo/fundpage/db"
	"github.com/danielhkuo/fundpage/logging"
	"github.com/danielhkuo/fundpage/middleware"
	"github.com/danielhkuo/fundpage/page"
	"github.com/danielhkuo/fundpage/progress"
	"github.com/danielhkuo/fundpage/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// LOG_LEVEL may come from the .env file, so the logger waits for it
	logging.Setup(cfg.LogLevel)

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(cfg.CampaignID, cfg.AdminKeySalt))
		return
	}

	// Phase chain and page template
	chain, err := progress.LoadChain(cfg.ChainPath)
	if err != nil {
		slog.Error("phase chain invalid", "error", err, "path", cfg.ChainPath)
		os.Exit(1)
	}
	tmpl, err := page.Load(cfg.TemplatePath)
	if err != nil {
		slog.Error("page template unavailable", "error", err, "path", cfg.TemplatePath)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType, "phases", len(chain.Order))

	// Create router
	mux := router.NewRouter(dbConn, cfg, chain, tmpl)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "campaign", cfg.CampaignID)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/fundpage/auth"
	"github.com/danielhkuo/fundpage/cliparse"
	"github.com/danielhkuo/fundpage/contact"
	"github.com/danielhkuo/fundpage/db"
	"github.com/danielhkuo/fundpage/middleware"
	"github.com/danielhkuo/fundpage/models"
)

type ContactHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	mailer contact.Mailer
}

func NewContactHandler(db *sql.DB, cfg cliparse.Config) *ContactHandler {
	return &ContactHandler{
		db:     db,
		cfg:    cfg,
		mailer: contact.NewMailer(cfg.MailRecipient, cfg.MailSubject),
	}
}

// Submit handles POST /contact
// Answers with a redirect to the mailto link, or the link as JSON when
// the client asks for it. Recording the submission never blocks the reply.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, middleware.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}

	sub := contact.FromForm(r.PostForm)
	mailto := h.mailer.URL(sub)

	id := uuid.NewString()
	if err := h.record(r.Context(), id, sub, r); err != nil {
		slog.Error("failed to record contact submission", "error", err, "contact_id", id)
		id = ""
	} else {
		slog.Info("contact submission recorded", "contact_id", id, "chosen", len(sub.Chosen))
	}

	if middleware.WantsJSON(r) {
		middleware.JSONResponse(w, http.StatusOK, models.ContactResponse{
			ID:     id,
			Mailto: mailto,
		})
		return
	}

	http.Redirect(w, r, mailto, http.StatusSeeOther)
}

func (h *ContactHandler) record(ctx context.Context, id string, sub contact.Submission, r *http.Request) error {
	chosen := sub.Chosen
	if chosen == nil {
		chosen = []string{}
	}
	chosenJSON, err := json.Marshal(chosen)
	if err != nil {
		return fmt.Errorf("failed to encode chosen items: %w", err)
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	var userAgent *string
	if ua := r.Header.Get("User-Agent"); ua != "" {
		userAgent = &ua
	}

	_, err = h.db.ExecContext(ctx, db.Rebind(h.cfg.DatabaseType, `
		INSERT INTO contact_submission
			(id, name, email, country, message, custom_amount, chosen, ip_hash, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), id, sub.Name, sub.Email, sub.Country, sub.Message, sub.CustomAmount,
		string(chosenJSON), ipHash, userAgent, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert contact submission: %w", err)
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fundpage/dom"
	"github.com/danielhkuo/fundpage/loader"
	"github.com/danielhkuo/fundpage/models"
	"github.com/danielhkuo/fundpage/render"
)

type PageHandler struct {
	template []byte
	source   loader.Source
	renderer *render.Renderer
}

func NewPageHandler(template []byte, source loader.Source, renderer *render.Renderer) *PageHandler {
	return &PageHandler{template: template, source: source, renderer: renderer}
}

// ServePage handles GET /
// Each request parses a fresh copy of the template and fills it from one
// snapshot load. A failed load serves the template as is.
func (h *PageHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	doc, err := dom.Parse(bytes.NewReader(h.template))
	if err != nil {
		slog.Error("failed to parse page template", "error", err)
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	loader.Load(r.Context(), h.source, func(snap models.CampaignSnapshot) {
		h.renderer.Render(doc, snap)
	})

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

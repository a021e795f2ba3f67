// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/fundpage/models"
)

const sampleSnapshot = `{
  "overall": {"raised": 1200, "goal": 5000, "donors": 14},
  "phases": {
    "education1": {"name": "Education I", "raised": 800, "goal": 800, "donors": 9},
    "mother2025": {"raised": 5}
  }
}`

func TestDecode(t *testing.T) {
	snap, err := Decode(strings.NewReader(sampleSnapshot))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := models.CampaignSnapshot{
		Overall: models.AggregateRecord{Raised: 1200, Goal: 5000, Donors: 14},
		Phases: map[string]models.PhaseRecord{
			"education1": {Name: "Education I", Raised: 800, Goal: 800, Donors: 9},
			"mother2025": {Raised: 5, Partial: true},
		},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_MissingKeys(t *testing.T) {
	snap, err := Decode(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if snap.Phases != nil {
		t.Errorf("expected nil phases, got %v", snap.Phases)
	}
	if snap.Overall != (models.AggregateRecord{}) {
		t.Errorf("expected zero overall, got %+v", snap.Overall)
	}
}

func TestDecode_NullPhaseIsAbsent(t *testing.T) {
	snap, err := Decode(strings.NewReader(`{"phases": {"education1": null, "education2": {"raised": 1, "goal": 2}}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, ok := snap.Phases["education1"]; ok {
		t.Error("null phase entry should decode as absent")
	}
	if p, ok := snap.Phases["education2"]; !ok || p.Partial {
		t.Errorf("education2 = %+v, present %v", p, ok)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"overall":`)); err == nil {
		t.Error("expected error for truncated JSON")
	}

	big := `{"overall":{},"pad":"` + strings.Repeat("x", MaxSnapshotBytes) + `"}`
	if _, err := Decode(strings.NewReader(big)); !errors.Is(err, ErrSnapshotTooLarge) {
		t.Errorf("expected ErrSnapshotTooLarge, got %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleSnapshot))
	}))
	defer srv.Close()

	snap, err := NewHTTPSource(srv.URL+"/data.json", time.Second).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Overall.Donors != 14 {
		t.Errorf("expected 14 donors, got %d", snap.Overall.Donors)
	}

	_, err = NewHTTPSource(srv.URL+"/missing.json", time.Second).Snapshot(context.Background())
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 error, got %v", err)
	}
}

func TestHTTPSource_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleSnapshot))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (&HTTPSource{URL: srv.URL}).Snapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(sampleSnapshot), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := FileSource{Path: path}.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Phases["education1"].Name != "Education I" {
		t.Errorf("unexpected phases %+v", snap.Phases)
	}

	if _, err := (FileSource{Path: path + ".missing"}).Snapshot(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad(t *testing.T) {
	var rendered []models.CampaignSnapshot
	render := func(s models.CampaignSnapshot) { rendered = append(rendered, s) }

	ok := Load(context.Background(), SourceFunc(func(context.Context) (models.CampaignSnapshot, error) {
		return models.CampaignSnapshot{Overall: models.AggregateRecord{Goal: 10}}, nil
	}), render)
	if !ok || len(rendered) != 1 {
		t.Fatalf("expected one render, ok=%v rendered=%d", ok, len(rendered))
	}

	ok = Load(context.Background(), SourceFunc(func(context.Context) (models.CampaignSnapshot, error) {
		return models.CampaignSnapshot{}, errors.New("boom")
	}), render)
	if ok {
		t.Error("Load() should report failure")
	}
	if len(rendered) != 1 {
		t.Error("render must not run when loading fails")
	}
}

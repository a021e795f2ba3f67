// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/fundpage/models"
)

// MaxSnapshotBytes bounds how much of a snapshot body is read.
const MaxSnapshotBytes = 4 << 20

var ErrSnapshotTooLarge = errors.New("snapshot exceeds size limit")

// Source produces the current campaign snapshot.
type Source interface {
	Snapshot(ctx context.Context) (models.CampaignSnapshot, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (models.CampaignSnapshot, error)

func (f SourceFunc) Snapshot(ctx context.Context) (models.CampaignSnapshot, error) {
	return f(ctx)
}

// Load fetches one snapshot and hands it to render. Failures are logged and
// render is not called, leaving the page in its template state.
func Load(ctx context.Context, src Source, render func(models.CampaignSnapshot)) bool {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		slog.Error("failed to load campaign snapshot", "error", err)
		return false
	}
	render(snap)
	return true
}

// Decode parses a snapshot document.
func Decode(r io.Reader) (models.CampaignSnapshot, error) {
	var snap models.CampaignSnapshot

	data, err := io.ReadAll(io.LimitReader(r, MaxSnapshotBytes+1))
	if err != nil {
		return snap, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(data) > MaxSnapshotBytes {
		return snap, fmt.Errorf("%w (%s)", ErrSnapshotTooLarge, humanize.IBytes(MaxSnapshotBytes))
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	slog.Debug("snapshot decoded", "size", humanize.Bytes(uint64(len(data))), "phases", len(snap.Phases))
	return snap, nil
}

// HTTPSource fetches the snapshot from a URL on every call.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns an HTTPSource whose client gives up after timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Snapshot(ctx context.Context) (models.CampaignSnapshot, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return models.CampaignSnapshot{}, fmt.Errorf("failed to build snapshot request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return models.CampaignSnapshot{}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.CampaignSnapshot{}, fmt.Errorf("failed to fetch snapshot: %s returned %s", s.URL, resp.Status)
	}

	return Decode(resp.Body)
}

// FileSource reads the snapshot from a local file on every call.
type FileSource struct {
	Path string
}

func (s FileSource) Snapshot(ctx context.Context) (models.CampaignSnapshot, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return models.CampaignSnapshot{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

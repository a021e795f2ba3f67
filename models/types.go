// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Snapshot types

// CampaignSnapshot is the data.json payload. Missing keys decode to zero values
// and a null phase entry decodes as if the phase were absent.
type CampaignSnapshot struct {
	Overall AggregateRecord        `json:"overall"`
	Phases  map[string]PhaseRecord `json:"phases"`
}

func (s *CampaignSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Overall AggregateRecord         `json:"overall"`
		Phases  map[string]*PhaseRecord `json:"phases"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Overall = raw.Overall
	s.Phases = nil
	if raw.Phases != nil {
		s.Phases = make(map[string]PhaseRecord, len(raw.Phases))
		for id, p := range raw.Phases {
			if p != nil {
				s.Phases[id] = *p
			}
		}
	}
	return nil
}

type AggregateRecord struct {
	Raised float64 `json:"raised"`
	Goal   float64 `json:"goal"`
	Donors int     `json:"donors"`
}

type PhaseRecord struct {
	Name   string  `json:"name,omitempty"`
	Raised float64 `json:"raised"`
	Goal   float64 `json:"goal"`
	Donors int     `json:"donors"`

	// Partial is set when a decoded record lacked raised or goal.
	Partial bool `json:"-"`
}

func (p *PhaseRecord) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	type plain PhaseRecord
	var rec plain
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, hasRaised := keys["raised"]
	_, hasGoal := keys["goal"]
	rec.Partial = !hasRaised || !hasGoal

	*p = PhaseRecord(rec)
	return nil
}

// Request types

type UpdateOverallRequest struct {
	Raised *float64 `json:"raised"`
	Goal   *float64 `json:"goal"`
	Donors *int     `json:"donors"`
}

type UpdatePhaseRequest struct {
	Name   *string  `json:"name"`
	Raised *float64 `json:"raised"`
	Goal   *float64 `json:"goal"`
	Donors *int     `json:"donors"`
}

// Response types

type ContactResponse struct {
	ID     string `json:"id,omitempty"`
	Mailto string `json:"mailto"`
}

type UpdatePhaseResponse struct {
	ID    string      `json:"id"`
	Phase PhaseRecord `json:"phase"`
}

type ContactListResponse struct {
	Contacts []ContactSubmission `json:"contacts"`
	Count    int                 `json:"count"`
}

// Domain types

type ContactSubmission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Country      string    `json:"country"`
	Message      string    `json:"message"`
	CustomAmount string    `json:"custom_amount"`
	Chosen       []string  `json:"chosen"`
	IPHash       *string   `json:"-"` // Never expose in JSON
	UserAgent    *string   `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package progress

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/fundpage/models"
)

var ErrInvalidChain = errors.New("invalid phase chain")

// Chain is the fixed phase ordering plus the unlock dependency of each phase.
// A phase absent from Prerequisites has no predecessor.
type Chain struct {
	Order         []string
	Prerequisites map[string]string
}

// DefaultChain is the campaign's built-in phase layout.
var DefaultChain = Chain{
	Order: []string{"education1", "education2", "education3", "mother2025", "mother2026"},
	Prerequisites: map[string]string{
		"education2": "education1",
		"education3": "education2",
		"mother2026": "mother2025",
	},
}

// Prerequisite returns the phase that must be completed before id opens.
func (c Chain) Prerequisite(id string) (string, bool) {
	prev, ok := c.Prerequisites[id]
	if !ok || prev == "" {
		return "", false
	}
	return prev, true
}

// Validate checks that every prerequisite names an earlier phase in Order.
// This also rules out cycles and self references.
func (c Chain) Validate() error {
	if len(c.Order) == 0 {
		return fmt.Errorf("%w: no phases", ErrInvalidChain)
	}

	position := make(map[string]int, len(c.Order))
	for i, id := range c.Order {
		if id == "" {
			return fmt.Errorf("%w: empty phase id at position %d", ErrInvalidChain, i)
		}
		if _, dup := position[id]; dup {
			return fmt.Errorf("%w: duplicate phase %q", ErrInvalidChain, id)
		}
		position[id] = i
	}

	for id, prev := range c.Prerequisites {
		if prev == "" {
			continue
		}
		at, ok := position[id]
		if !ok {
			return fmt.Errorf("%w: prerequisite declared for unknown phase %q", ErrInvalidChain, id)
		}
		before, ok := position[prev]
		if !ok {
			return fmt.Errorf("%w: phase %q depends on unknown phase %q", ErrInvalidChain, id, prev)
		}
		if before >= at {
			return fmt.Errorf("%w: phase %q must come after its prerequisite %q", ErrInvalidChain, id, prev)
		}
	}

	return nil
}

// PhaseState is the computed display state of one phase.
type PhaseState struct {
	ID      string
	Record  models.PhaseRecord
	Present bool
	Percent int

	Completed bool
	Locked    bool

	Prerequisite     string
	PrerequisiteName string
}

// Evaluate computes the state of every phase in chain order.
// Missing records read as zero. Missing and partial records are never completed.
func (c Chain) Evaluate(phases map[string]models.PhaseRecord) []PhaseState {
	completed := make(map[string]bool, len(c.Order))
	for _, id := range c.Order {
		if p, ok := phases[id]; ok && Completed(p) {
			completed[id] = true
		}
	}

	states := make([]PhaseState, 0, len(c.Order))
	for _, id := range c.Order {
		p, present := phases[id]
		st := PhaseState{
			ID:        id,
			Record:    p,
			Present:   present,
			Percent:   Pct(p.Raised, p.Goal),
			Completed: completed[id],
		}

		if prev, ok := c.Prerequisite(id); ok {
			st.Prerequisite = prev
			st.PrerequisiteName = prev
			if name := phases[prev].Name; name != "" {
				st.PrerequisiteName = name
			}
			st.Locked = !completed[prev]
		}

		states = append(states, st)
	}

	return states
}

type chainFile struct {
	Phases []struct {
		ID    string `yaml:"id"`
		After string `yaml:"after"`
	} `yaml:"phases"`
}

// ParseChain decodes a YAML chain definition:
//
//	phases:
//	  - id: education1
//	  - id: education2
//	    after: education1
func ParseChain(data []byte) (Chain, error) {
	var f chainFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Chain{}, fmt.Errorf("failed to parse chain: %w", err)
	}

	c := Chain{Prerequisites: map[string]string{}}
	for _, p := range f.Phases {
		c.Order = append(c.Order, p.ID)
		if p.After != "" {
			c.Prerequisites[p.ID] = p.After
		}
	}

	if err := c.Validate(); err != nil {
		return Chain{}, err
	}
	return c, nil
}

// LoadChain reads a chain definition from path. An empty path returns DefaultChain.
func LoadChain(path string) (Chain, error) {
	if path == "" {
		return DefaultChain, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Chain{}, fmt.Errorf("failed to read chain file: %w", err)
	}
	return ParseChain(data)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the snapshot, request, response, and domain types.

# Snapshot Types

The data.json document consumed by the page renderers:

	{
	  "overall": {"raised": 1200, "goal": 5000, "donors": 14},
	  "phases": {
	    "education1": {"name": "Education I", "raised": 800, "goal": 800, "donors": 9}
	  }
	}

  - CampaignSnapshot: overall + phases keyed by phase id
  - AggregateRecord: raised, goal, donors
  - PhaseRecord: name, raised, goal, donors

Every field may be absent and defaults to its zero value. A nil Phases map
is valid and reads as "no phase records".

# Request Types

Admin updates use pointer fields so omitted values are left unchanged:

  - UpdateOverallRequest: raised, goal, donors
  - UpdatePhaseRequest: name, raised, goal, donors

# Response Types

  - ContactResponse: id, mailto
  - UpdatePhaseResponse: id, phase
  - ErrorResponse: error, message

# Domain Types

  - ContactSubmission: a recorded contact form submission
*/
package models

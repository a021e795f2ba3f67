// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render writes a campaign snapshot into a page through the dom interfaces.

# Page Contract

The overall section uses element ids:

	overall-raised, overall-goal, overall-donors, overall-progress

Each phase card is an element with data-phase="<id>" containing:

	.card-progress-fill                      width set to the percentage
	.card-progress-label span:nth-child(1)   "$raised / $goal"
	.card-progress-label span:nth-child(2)   "<pct>%"
	.card-meta                               "<donors> supporters"
	.card-lock                               lock badge

Anything missing from the page is skipped.

# Locking

Locked cards get the card-locked class, aria-disabled="true" and an onclick
that cancels navigation. Unlocked cards have all three removed, so rendering
the same document twice reflects the latest snapshot.
*/
package render

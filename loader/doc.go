// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package loader fetches the campaign snapshot.

# Sources

A Source returns one snapshot per call:

  - HTTPSource: GET a data.json URL (non-2xx responses are errors)
  - FileSource: read a local JSON file
  - SourceFunc: adapt any function, e.g. a database query

# Loading

Load runs a source once and passes the result to a render callback:

	loader.Load(ctx, src, func(snap models.CampaignSnapshot) {
		renderer.Render(doc, snap)
	})

On failure the error is logged and the callback is skipped, so the page keeps
its template defaults.
*/
package loader

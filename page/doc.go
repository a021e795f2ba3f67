// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package page holds the campaign page template.

The embedded index.html carries every element the renderers look for: the
overall-* ids, one [data-phase] card per phase in the default chain, and the
support-form that posts to /contact.

	tmpl, err := page.Load(cfg.TemplatePath)

An empty path selects the embedded template.
*/
package page

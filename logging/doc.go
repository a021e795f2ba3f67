// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging configures log/slog for the fundpage binaries: a text
// handler when stderr is a terminal, JSON otherwise, at the configured
// level (LOG_LEVEL for both binaries).
package logging

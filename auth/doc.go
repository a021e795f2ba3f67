// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key and privacy hashing utilities.

# Admin Keys

Admin keys use HMAC-SHA256 over the campaign ID:

	adminKey := auth.GenerateAdminKey(cfg.CampaignID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(cfg.CampaignID, adminKey, cfg.AdminKeySalt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same campaign ID and salt always produce the same key, so nothing is
stored. Admin requests send it in the X-Admin-Key header. Run the server with
-print-admin-key to obtain it.

# IP Hashing

Contact submissions keep only a salted hash of the sender's address:

	hash := auth.HashIP(ipAddress, cfg.IPHashSalt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth

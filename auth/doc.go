/*
Package auth provides admin key validation and privacy hashing.

# Admin Keys

The admin key is a single shared secret from configuration. Validation
is constant time:

	err := auth.ValidateAdminKey(provided, cfg.AdminKey)

An empty configured key never validates.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving fraud detection in the vote ledger:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. The raw IP is
never stored.
*/
package auth

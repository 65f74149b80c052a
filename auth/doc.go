// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives voter identities and record IDs.

# Voter Identity

Votes are keyed by the caller's IP address, hashed with a server secret:

	voter := auth.VoterHash(middleware.GetClientIP(r), cfg.VoterSalt)

Returns the first 16 bytes (32 hex chars) of HMAC-SHA256. The raw IP is never
stored. This is not authentication: voters behind one NAT share an identity
and a voter who changes network gets a new one.

# Vote IDs

Rows in user_vote use random UUIDs:

	id := auth.NewVoteID()
*/
package auth

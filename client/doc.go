// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the HTTP client of the voting endpoint.

A Client implements voting.Remote, so it plugs straight into a session:

	c, err := client.New("https://example.com/voting", voting.ModeNested,
		client.WithTimeout(5*time.Second))
	session := voting.NewRemoteSession(c, voting.WithLoadRetry(3, time.Second))
	if err := session.Load(ctx); err != nil { ... }
	outcome := session.Vote(ctx, 101)

# Wire Format

Fetch issues GET <endpoint> and decodes

	{"nominations": [...], "votedFor": [ids], "deadline": "RFC3339"}

in the client's mode. Decoded ballots are validated: ids must be positive,
titles and candidate names present, and ids unique.

SubmitVote issues POST <endpoint> with {"candidateId": n} (nested) or
{"nominationId": n} (flat). Any 2xx is acceptance. A non-2xx reply with an
{"error": ...} body becomes a *voting.RejectedError whose Message the session
shows verbatim. Other non-2xx replies (proxy pages, empty bodies) and network
failures are returned wrapped and reported to voters as a connectivity
problem.
*/
package client

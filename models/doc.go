// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON types exchanged with the voting endpoint.

# Request Types

  - VoteRequest: candidateId (nested mode) or nominationId (flat mode)

# Response Types

  - StateResponse: nominations, votedFor, optional deadline
  - NominationPayload: id, title, emoji, description, votes or candidates
  - CandidatePayload: id, name, votes
  - VoteResponse: success
  - ResultsResponse: total, standings
  - ErrorResponse: error

# Conversions

Payloads convert to and from the voting package types:

	resp := models.NewStateResponse(state)
	state := resp.ToState(voting.ModeNested)

The wire format does not say which nomination shape it carries, so decoding
takes the mode explicitly.
*/
package models

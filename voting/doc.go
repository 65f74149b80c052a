// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements vote eligibility, submission and tallying for a
nomination ballot.

# Nomination Shapes

A ballot is a list of nominations in one of two shapes:

  - FlatNomination: the nomination itself receives votes
  - NominationWithCandidates: votes go to candidates nested in the nomination

Both implement the Nomination interface, which the checker and the tally
consume through Votables.

# Eligibility

Check decides whether a target may receive a vote:

	d := voting.Check(state, candidateID)
	if !d.Allowed {
		fmt.Println(d.Reason) // "already voted in this nomination"
	}

A voter gets one vote per nomination. Voting twice for the same candidate and
voting for a second candidate in the same nomination are rejected with
different reasons.

# Submission

Submit runs the check, hands the vote to a Submitter and, only if the
submitter accepts, returns the new state with the count incremented and the
target recorded as voted:

	out := voting.Submit(ctx, state, id, voting.LocalBallotBox{})
	if out.Accepted() {
		state = out.State
	}

Session wraps the same flow for concurrent callers and refuses a second vote
in a nomination while one is still in flight.

# Tally

Rank flattens all votables into standings sorted by votes (descending, stable
on ties) with their share of the total.

# Countdown

Countdown reports the time left until the voting deadline. The deadline is
informational: nothing in this package refuses votes after it passes.
*/
package voting

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the ballot, office, and result types shared by the
loaders, the tabulation engine, and the reporter.

# Domain Types

  - Ballot: timestamp, decimal weight, and candidate indices (best first)
  - Office: elected position and its seat count

Ballots are built with NewBallot, which copies the ranking slice. The
engine never writes to a ballot; supervote weights are applied by deriving
copies with WithWeight.

# Result Types

Types for the JSON report:

  - CandidateTotal: a candidate's weight in one round and its standing
  - RoundReport: standings, exhausted weight, and the round's decision
  - ResultReport: final status, winners or tied set, and every round
  - ErrorResponse: error, message

# Constants

Ballot pools:

	PoolRegular   = "regular"
	PoolSupervote = "supervote"

Election status:

	StatusDecided       = "decided"
	StatusUnresolvedTie = "unresolved_tie"
*/
package models

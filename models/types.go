// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"github.com/shopspring/decimal"
)

// Ballot pool constants
const (
	PoolRegular   = "regular"
	PoolSupervote = "supervote"
)

// Election status constants
const (
	StatusDecided       = "decided"
	StatusUnresolvedTie = "unresolved_tie"
)

// Domain types

// Ballot is one weighted ranking. Rankings holds candidate indices, most
// preferred first. Ballots are never modified after construction; use
// WithWeight to derive a reweighted copy.
type Ballot struct {
	Timestamp string          `json:"timestamp"`
	Weight    decimal.Decimal `json:"weight"`
	Rankings  []int           `json:"rankings"`
}

// NewBallot copies rankings so the caller may reuse its slice.
func NewBallot(timestamp string, weight decimal.Decimal, rankings []int) Ballot {
	r := make([]int, len(rankings))
	copy(r, rankings)
	return Ballot{
		Timestamp: timestamp,
		Weight:    weight,
		Rankings:  r,
	}
}

// Empty reports whether the ballot ranks nobody (an abstention).
func (b Ballot) Empty() bool {
	return len(b.Rankings) == 0
}

// WithWeight returns a copy of b carrying weight w.
func (b Ballot) WithWeight(w decimal.Decimal) Ballot {
	return NewBallot(b.Timestamp, w, b.Rankings)
}

// Office is an elected position and the number of seats it fills.
type Office struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

// Result types

// Number is a decimal weight that encodes as a bare JSON number rather
// than a quoted string.
type Number struct {
	decimal.Decimal
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	return n.Decimal.UnmarshalJSON(data)
}

type CandidateTotal struct {
	Candidate int    `json:"candidate"` // 0-indexed
	Name      string `json:"name"`
	Votes     Number `json:"votes"`
	Position  int    `json:"position"` // 1-indexed standing
}

type RoundReport struct {
	Number     int              `json:"number"`
	Standings  []CandidateTotal `json:"standings"`
	Exhausted  Number           `json:"exhausted"`
	Cast       Number           `json:"cast"`
	LastPlace  []string         `json:"last_place"`
	Tie        bool             `json:"tie"`
	TieBroken  bool             `json:"tie_broken"`
	Eliminated *string          `json:"eliminated,omitempty"`
}

type ResultReport struct {
	RunID       string           `json:"run_id"`
	Office      string           `json:"office"`
	Seats       int              `json:"seats"`
	Seed        uint64           `json:"seed"`
	Status      string           `json:"status"`
	Candidates  []string         `json:"candidates"`
	Preempted   []string         `json:"preempted"`
	Winners     []string         `json:"winners"`
	Tied        []string         `json:"tied,omitempty"`
	FinalTotals []CandidateTotal `json:"final_totals,omitempty"`
	Rounds      []RoundReport    `json:"rounds"`
	InputsHash  string           `json:"inputs_hash"` // Digest of all counted ballots for verification
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

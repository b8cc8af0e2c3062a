// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
)

// NoCandidate marks a round in which nobody was eliminated.
const NoCandidate = -1

// RandomSource picks uniformly among n choices, returning a value in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Standing is a candidate's total within one round.
type Standing struct {
	Candidate int
	Votes     decimal.Decimal
}

// Standings orders totals by weight descending. Equal totals fall back to
// ascending candidate index so reports are stable; ties are never inferred
// from this order.
func Standings(totals map[int]decimal.Decimal) []Standing {
	out := make([]Standing, 0, len(totals))
	for c, v := range totals {
		out = append(out, Standing{Candidate: c, Votes: v})
	}
	slices.SortFunc(out, func(a, b Standing) int {
		if c := b.Votes.Cmp(a.Votes); c != 0 {
			return c
		}
		return a.Candidate - b.Candidate
	})
	return out
}

// LastPlace returns every candidate whose total equals the round minimum,
// in ascending candidate order.
func LastPlace(totals map[int]decimal.Decimal) []int {
	if len(totals) == 0 {
		return nil
	}
	candidates := maps.Keys(totals)
	slices.Sort(candidates)

	least := totals[candidates[0]]
	for _, c := range candidates[1:] {
		if totals[c].LessThan(least) {
			least = totals[c]
		}
	}

	var losers []int
	for _, c := range candidates {
		if totals[c].Equal(least) {
			losers = append(losers, c)
		}
	}
	return losers
}

// Decision is the Policy's verdict for one round.
type Decision struct {
	Standings  []Standing
	Losers     []int
	Eliminated int
	Tie        bool // more than one candidate shares last place
	TieBroken  bool // the tie was settled by a random draw
	Unresolved bool // terminal tie; nobody eliminated
}

// Policy chooses the candidate to eliminate from a round's totals.
type Policy struct {
	Seats     int
	BreakTies bool
	Rand      RandomSource
}

// Decide eliminates the sole last-place candidate, or settles a last-place
// tie by chance when another round will follow (more than Seats+1 active)
// or BreakTies is set. A tie for the final elimination without BreakTies is
// reported as Unresolved.
func (p Policy) Decide(totals map[int]decimal.Decimal) Decision {
	d := Decision{
		Standings:  Standings(totals),
		Losers:     LastPlace(totals),
		Eliminated: NoCandidate,
	}

	switch {
	case len(d.Losers) == 0:
		return d
	case len(d.Losers) == 1:
		d.Eliminated = d.Losers[0]
		return d
	}

	d.Tie = true
	if len(totals) > p.Seats+1 || p.BreakTies {
		d.Eliminated = d.Losers[p.Rand.IntN(len(d.Losers))]
		d.TieBroken = true
		return d
	}

	d.Unresolved = true
	return d
}

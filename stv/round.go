// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"

	"github.com/danielhkuo/quickly-stv/models"
)

// ActiveSet is an immutable snapshot of the candidates still in contention.
type ActiveSet struct {
	members map[int]struct{}
}

// NewActiveSet builds a snapshot from candidate indices.
func NewActiveSet(candidates []int) ActiveSet {
	members := make(map[int]struct{}, len(candidates))
	for _, c := range candidates {
		members[c] = struct{}{}
	}
	return ActiveSet{members: members}
}

func (s ActiveSet) Contains(candidate int) bool {
	_, ok := s.members[candidate]
	return ok
}

func (s ActiveSet) Len() int {
	return len(s.members)
}

// Sorted returns the members in ascending candidate order.
func (s ActiveSet) Sorted() []int {
	keys := maps.Keys(s.members)
	slices.Sort(keys)
	return keys
}

// Without returns a new snapshot lacking candidate. s is left untouched.
func (s ActiveSet) Without(candidate int) ActiveSet {
	members := make(map[int]struct{}, len(s.members))
	for c := range s.members {
		if c != candidate {
			members[c] = struct{}{}
		}
	}
	return ActiveSet{members: members}
}

// Tally is the outcome of counting one round.
type Tally struct {
	Totals    map[int]decimal.Decimal
	Exhausted decimal.Decimal
	Cast      decimal.Decimal
}

// Tabulate credits each ballot's weight to its highest ranked candidate that
// is still active. Ballots with no active candidate left are exhausted and
// their weight is reported separately. Every active candidate appears in
// Totals, even with zero weight.
func Tabulate(active ActiveSet, ballots []models.Ballot) Tally {
	totals := make(map[int]decimal.Decimal, active.Len())
	for c := range active.members {
		totals[c] = decimal.Zero
	}

	exhausted := decimal.Zero
	cast := decimal.Zero
	for _, b := range ballots {
		cast = cast.Add(b.Weight)
		counted := false
		for _, c := range b.Rankings {
			if active.Contains(c) {
				totals[c] = totals[c].Add(b.Weight)
				counted = true
				break
			}
		}
		if !counted {
			exhausted = exhausted.Add(b.Weight)
		}
	}

	return Tally{
		Totals:    totals,
		Exhausted: exhausted,
		Cast:      cast,
	}
}

// Counted is the weight credited to candidates this round.
func (t Tally) Counted() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range t.Totals {
		sum = sum.Add(v)
	}
	return sum
}

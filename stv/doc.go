// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stv implements ranked-choice tabulation: one candidate is eliminated
per round until only the seat count remains.

# Counting

Each round, Tabulate credits every ballot's weight to its highest ranked
candidate still in contention. Ballots whose candidates have all been
eliminated are exhausted; their weight is reported but counts for no one.

Policy.Decide then picks the round's loser:

 1. The candidate with the smallest total is eliminated.
 2. A tie for last place is broken uniformly at random when more than
    seats+1 candidates remain, or when BreakTies is set.
 3. Otherwise the count stops with an unresolved tie.

Totals are shopspring decimals and ties are detected with exact equality.

# Running an Election

	e, err := stv.NewElection(names, ballots, stv.Config{
		Seats:      1,
		Eliminated: []int{3},
		Rand:       stv.NewRand(seed),
		Observer:   func(r stv.Round) { printer.Round(r) },
	})
	if err != nil {
		return err // *ConfigError
	}
	outcome, err := e.Run()

The driver moves through StateInitializing, StateCountingRound, and ends in
StateDecided or StateUnresolvedTie. Each round works on a fresh ActiveSet
snapshot.

# Supervotes

NormalizeSupervotes weights a second ballot pool so its total equals the
mass of the regular pool (empty ballots excluded):

	ballots, norm, err := stv.NormalizeSupervotes(regular, exec)

Quotients are rounded to Precision (5) significant digits.

# Reproducibility

NewRand seeds a PCG generator; a run with the same ballots, seats,
eliminations, and seed produces identical rounds and tie-break draws.
*/
package stv

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-stv/models"
)

// State is the driver's position in the counting state machine.
type State int

const (
	StateInitializing State = iota
	StateCountingRound
	StateDecided
	StateUnresolvedTie
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateCountingRound:
		return "counting"
	case StateDecided:
		return models.StatusDecided
	case StateUnresolvedTie:
		return models.StatusUnresolvedTie
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config holds everything a run needs besides the ballots.
type Config struct {
	Seats      int
	Eliminated []int // preemptively removed, 0-indexed
	BreakTies  bool
	Rand       RandomSource
	Logger     *slog.Logger
	// Observer, if set, receives each round as soon as it is decided.
	Observer func(Round)
}

// Round is the observable result of one counting round.
type Round struct {
	Number     int
	Active     []int // candidates counted this round, ascending
	Totals     map[int]decimal.Decimal
	Standings  []Standing
	Exhausted  decimal.Decimal
	Cast       decimal.Decimal
	Losers     []int
	Eliminated int // NoCandidate when nobody was removed
	Tie        bool
	TieBroken  bool
}

// Outcome is the final result of a run. Winners is only populated when
// Status is StateDecided; Tied and FinalTotals describe an unresolved tie.
type Outcome struct {
	Status      State
	Winners     []int
	Tied        []int
	FinalTotals map[int]decimal.Decimal
	Rounds      []Round
}

// Decided reports whether the outcome names a winner set.
func (o *Outcome) Decided() bool {
	return o.Status == StateDecided
}

// Election drives rounds of counting until the field shrinks to the seat
// count or an unbreakable tie stops it. An Election is single use.
type Election struct {
	candidates []string
	ballots    []models.Ballot
	cfg        Config
	policy     Policy
	log        *slog.Logger

	state  State
	active ActiveSet
}

// NewElection validates the configuration and ballots and builds the
// initial active set: every candidate minus the preemptive eliminations.
func NewElection(candidates []string, ballots []models.Ballot, cfg Config) (*Election, error) {
	n := len(candidates)
	if n == 0 {
		return nil, configErrorf("candidates", ErrNoCandidates, "")
	}
	if cfg.Seats < 1 {
		return nil, configErrorf("seats", ErrInvalidSeats, "seats=%d, must be at least 1", cfg.Seats)
	}

	preempted := make(map[int]struct{}, len(cfg.Eliminated))
	for _, c := range cfg.Eliminated {
		if c < 0 || c >= n {
			return nil, configErrorf("eliminated", ErrUnknownCandidate,
				"candidate %d, have %d candidates", c+1, n)
		}
		preempted[c] = struct{}{}
	}

	for i, b := range ballots {
		if err := validateRankings(b.Rankings, n); err != nil {
			return nil, configErrorf("ballots", err, "ballot %d (%s)", i+1, b.Timestamp)
		}
	}

	remaining := make([]int, 0, n)
	for c := 0; c < n; c++ {
		if _, ok := preempted[c]; !ok {
			remaining = append(remaining, c)
		}
	}
	if cfg.Seats > len(remaining) {
		return nil, configErrorf("seats", ErrInvalidSeats,
			"seats=%d exceeds %d remaining candidates (%d preemptively eliminated)",
			cfg.Seats, len(remaining), len(preempted))
	}

	// A random source is only consulted on ties; require it up front so a
	// tie late in the count cannot fail.
	if cfg.Rand == nil {
		return nil, configErrorf("rand", ErrMissingRandSource, "")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Election{
		candidates: candidates,
		ballots:    ballots,
		cfg:        cfg,
		policy: Policy{
			Seats:     cfg.Seats,
			BreakTies: cfg.BreakTies,
			Rand:      cfg.Rand,
		},
		log:    logger,
		state:  StateInitializing,
		active: NewActiveSet(remaining),
	}, nil
}

func validateRankings(rankings []int, n int) error {
	seen := make(map[int]struct{}, len(rankings))
	for _, c := range rankings {
		if c < 0 || c >= n {
			return fmt.Errorf("%w: index %d", ErrUnknownCandidate, c)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: index %d", ErrDuplicateRanking, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// State returns the current state of the count.
func (e *Election) State() State {
	return e.state
}

// Run counts rounds until the election is decided or ends in a terminal
// tie.
func (e *Election) Run() (*Outcome, error) {
	if e.state != StateInitializing {
		return nil, ErrAlreadyRun
	}

	out := &Outcome{}
	number := 1
	for e.active.Len() > e.cfg.Seats {
		e.state = StateCountingRound
		snapshot := e.active

		tally := Tabulate(snapshot, e.ballots)
		decision := e.policy.Decide(tally.Totals)

		round := Round{
			Number:     number,
			Active:     snapshot.Sorted(),
			Totals:     tally.Totals,
			Standings:  decision.Standings,
			Exhausted:  tally.Exhausted,
			Cast:       tally.Cast,
			Losers:     decision.Losers,
			Eliminated: decision.Eliminated,
			Tie:        decision.Tie,
			TieBroken:  decision.TieBroken,
		}
		out.Rounds = append(out.Rounds, round)

		if decision.Unresolved {
			e.log.Debug("round ended in terminal tie",
				"round", number,
				"tied", len(decision.Losers),
				"active", snapshot.Len(),
			)
			e.notify(round)
			e.state = StateUnresolvedTie
			out.Status = StateUnresolvedTie
			out.Tied = snapshot.Sorted()
			out.FinalTotals = tally.Totals
			return out, nil
		}

		e.log.Debug("round counted",
			"round", number,
			"eliminated", e.candidates[decision.Eliminated],
			"tie_broken", decision.TieBroken,
			"exhausted", tally.Exhausted.String(),
		)
		e.notify(round)

		e.active = snapshot.Without(decision.Eliminated)
		number++
	}

	e.state = StateDecided
	out.Status = StateDecided
	out.Winners = e.active.Sorted()
	return out, nil
}

func (e *Election) notify(r Round) {
	if e.cfg.Observer != nil {
		e.cfg.Observer(r)
	}
}

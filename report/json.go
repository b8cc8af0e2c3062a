// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/danielhkuo/quickly-stv/models"
	"github.com/danielhkuo/quickly-stv/stv"
)

// Meta carries the run details that are not part of the engine's outcome.
type Meta struct {
	RunID      string
	Office     string
	Seats      int
	Seed       uint64
	Candidates []string
	Preempted  []int
	InputsHash string
}

// BuildReport converts an outcome into its JSON form, naming candidates.
func BuildReport(meta Meta, o *stv.Outcome) models.ResultReport {
	name := func(c int) string {
		if c >= 0 && c < len(meta.Candidates) {
			return meta.Candidates[c]
		}
		return ""
	}
	names := func(cs []int) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = name(c)
		}
		return out
	}

	r := models.ResultReport{
		RunID:      meta.RunID,
		Office:     meta.Office,
		Seats:      meta.Seats,
		Seed:       meta.Seed,
		Status:     Status(o),
		Candidates: meta.Candidates,
		Preempted:  names(meta.Preempted),
		Winners:    names(o.Winners),
		Rounds:     make([]models.RoundReport, 0, len(o.Rounds)),
		InputsHash: meta.InputsHash,
	}
	if !o.Decided() {
		r.Tied = names(o.Tied)
		r.FinalTotals = candidateTotals(stv.Standings(o.FinalTotals), name)
	}

	for _, round := range o.Rounds {
		rr := models.RoundReport{
			Number:    round.Number,
			Standings: candidateTotals(round.Standings, name),
			Exhausted: models.Number{Decimal: round.Exhausted},
			Cast:      models.Number{Decimal: round.Cast},
			LastPlace: names(round.Losers),
			Tie:       round.Tie,
			TieBroken: round.TieBroken,
		}
		if round.Eliminated != stv.NoCandidate {
			eliminated := name(round.Eliminated)
			rr.Eliminated = &eliminated
		}
		r.Rounds = append(r.Rounds, rr)
	}

	return r
}

func candidateTotals(standings []stv.Standing, name func(int) string) []models.CandidateTotal {
	out := make([]models.CandidateTotal, len(standings))
	for i, s := range standings {
		out[i] = models.CandidateTotal{
			Candidate: s.Candidate,
			Name:      name(s.Candidate),
			Votes:     models.Number{Decimal: s.Votes},
			Position:  i + 1,
		}
	}
	return out
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON report", "error", err)
	}
	return err
}

// WriteError writes a JSON error document.
func WriteError(w io.Writer, kind string, err error) error {
	return WriteJSON(w, models.ErrorResponse{
		Error:   kind,
		Message: err.Error(),
	})
}

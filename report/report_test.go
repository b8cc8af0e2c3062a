// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-stv/models"
	"github.com/danielhkuo/quickly-stv/stv"
	"github.com/danielhkuo/quickly-stv/testutil"
)

var names = []string{"Alice", "Bob", "Carol"}

func count(t *testing.T, ballots []models.Ballot, breakTies bool, observe func(stv.Round)) *stv.Outcome {
	t.Helper()
	e, err := stv.NewElection(names, ballots, stv.Config{
		Seats:     1,
		BreakTies: breakTies,
		Rand:      &testutil.FixedSource{},
		Observer:  observe,
	})
	require.NoError(t, err)
	o, err := e.Run()
	require.NoError(t, err)
	return o
}

func decidedBallots() []models.Ballot {
	return testutil.Concat(
		testutil.Repeat(4, 0, 1),
		testutil.Repeat(3, 1, 0),
		testutil.Repeat(2, 2, 1),
	)
}

func TestPrinter_RoundAndWinner(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, names, false)

	o := count(t, decidedBallots(), false, p.Round)
	p.Outcome(o, "PRESIDENT")

	out := buf.String()
	assert.Contains(t, out, "Round 1\n")
	assert.Contains(t, out, "1st. Alice with 4 votes.")
	assert.Contains(t, out, "3rd. Carol with 2 votes.")
	assert.Contains(t, out, "The candidate chosen for elimination was Carol.")
	assert.Contains(t, out, "Round 2\n")
	assert.Contains(t, out, "1st. Bob with 5 votes.")
	assert.Contains(t, out, "    Bob\n")
	assert.Contains(t, out, "Congratulations to our new PRESIDENT(s)!")
	assert.NotContains(t, out, "\x1b[", "color must be off")
}

func TestPrinter_UnresolvedTie(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, names, false)

	ballots := testutil.Concat(
		testutil.Repeat(2, 0),
		testutil.Repeat(2, 1),
		testutil.Repeat(1, 2),
	)
	o := count(t, ballots, false, p.Round)
	p.Outcome(o, "PRESIDENT")

	out := buf.String()
	assert.Contains(t, out, "There is a 2-way tie for last place: Alice, Bob.")
	assert.Contains(t, out, "!!! THE ELECTION ENDED IN A TIE. !!!")
	assert.NotContains(t, out, "Congratulations")
	assert.Equal(t, models.StatusUnresolvedTie, Status(o))
}

func TestPrinter_BallotSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, names, false)

	p.BallotSummary("ballots", 12345, 2)
	p.BallotSummary("exec ballots", 3, 0)

	out := buf.String()
	assert.Contains(t, out, "Created 12,345 ballots.")
	assert.Contains(t, out, "WARNING: Detected 2 empty ballots.")
	assert.Equal(t, 1, strings.Count(out, "WARNING"))
}

func TestBuildReport(t *testing.T) {
	o := count(t, decidedBallots(), false, nil)

	r := BuildReport(Meta{
		RunID:      "run-1",
		Office:     "PRESIDENT",
		Seats:      1,
		Seed:       42,
		Candidates: names,
		InputsHash: "abc",
	}, o)

	assert.Equal(t, models.StatusDecided, r.Status)
	assert.Equal(t, []string{"Bob"}, r.Winners)
	assert.Empty(t, r.Tied)
	require.Len(t, r.Rounds, 2)

	first := r.Rounds[0]
	require.NotNil(t, first.Eliminated)
	assert.Equal(t, "Carol", *first.Eliminated)
	assert.Equal(t, []string{"Carol"}, first.LastPlace)
	assert.Equal(t, "Alice", first.Standings[0].Name)
	assert.Equal(t, 1, first.Standings[0].Position)
	assert.Equal(t, "4", first.Standings[0].Votes.String())
}

func TestWriteJSON_DecimalsAreNumbers(t *testing.T) {
	o := count(t, decidedBallots(), false, nil)
	r := BuildReport(Meta{Office: "PRESIDENT", Seats: 1, Candidates: names}, o)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	rounds := decoded["rounds"].([]any)
	standings := rounds[0].(map[string]any)["standings"].([]any)
	votes := standings[0].(map[string]any)["votes"]
	assert.Equal(t, float64(4), votes)
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, "config", errors.New("seats must be at least 1")))

	var decoded models.ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "config", decoded.Error)
	assert.Equal(t, "seats must be at least 1", decoded.Message)
}

func TestInvocationCommand(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
		want string
	}{
		{
			name: "csv minimal",
			inv:  Invocation{Program: "stv", Seed: 7, File: "votes.csv", Office: "PRESIDENT"},
			want: `stv -y -seed 7 "votes.csv" PRESIDENT`,
		},
		{
			name: "csv with everything",
			inv: Invocation{
				Program:      "stv",
				Seed:         99,
				Eliminated:   []int{0, 3},
				BreakTies:    true,
				ExecVotes:    "exec.csv",
				OfficesFile:  "offices.toml",
				NoPreference: "Abstain",
				File:         "my votes.csv",
				Office:       "TREASURER",
			},
			want: `stv -y -seed 99 -elim 1,4 -break-ties -exec-votes "exec.csv" -offices "offices.toml" -no-preference "Abstain" "my votes.csv" TREASURER`,
		},
		{
			name: "database poll",
			inv:  Invocation{Program: "stv", Seed: 1, DatabaseType: "postgres", PollID: "p1", Office: "PRESIDENT"},
			want: `stv -y -seed 1 -t postgres -poll "p1" PRESIDENT`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.Command())
		})
	}
}

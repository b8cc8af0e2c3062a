// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumber_JSON(t *testing.T) {
	total := CandidateTotal{
		Candidate: 1,
		Name:      "Bob",
		Votes:     Number{Decimal: decimal.RequireFromString("0.33333")},
		Position:  1,
	}

	data, err := json.Marshal(total)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"candidate":1,"name":"Bob","votes":0.33333,"position":1}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var decoded CandidateTotal
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.Votes.Equal(total.Votes.Decimal) {
		t.Errorf("Votes = %s, want %s", decoded.Votes, total.Votes)
	}
}

func TestNumber_DoesNotChangeBallotEncoding(t *testing.T) {
	b := NewBallot("t1", decimal.NewFromInt(2), []int{0})

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"timestamp":"t1","weight":"2","rankings":[0]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

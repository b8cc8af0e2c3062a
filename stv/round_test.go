// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-stv/models"
	"github.com/danielhkuo/quickly-stv/testutil"
)

func TestTabulate_FirstActivePreference(t *testing.T) {
	ballots := testutil.Concat(
		testutil.Repeat(3, 0, 1, 2),
		testutil.Repeat(2, 1, 0),
		testutil.Repeat(1, 2, 1),
	)

	tally := Tabulate(NewActiveSet([]int{0, 1}), ballots)

	want := map[int]string{0: "3", 1: "3"}
	for c, v := range want {
		if !tally.Totals[c].Equal(testutil.Dec(t, v)) {
			t.Errorf("candidate %d total = %s, want %s", c, tally.Totals[c], v)
		}
	}
	if _, ok := tally.Totals[2]; ok {
		t.Error("inactive candidate 2 appears in totals")
	}
	if !tally.Exhausted.IsZero() {
		t.Errorf("Exhausted = %s, want 0", tally.Exhausted)
	}
}

func TestTabulate_ZeroForUnrankedActiveCandidates(t *testing.T) {
	tally := Tabulate(NewActiveSet([]int{0, 1, 2}), testutil.Repeat(2, 0))

	if len(tally.Totals) != 3 {
		t.Fatalf("expected 3 totals, got %d", len(tally.Totals))
	}
	if !tally.Totals[2].IsZero() {
		t.Errorf("candidate 2 total = %s, want 0", tally.Totals[2])
	}
}

func TestTabulate_ExhaustedBallots(t *testing.T) {
	ballots := testutil.Concat(
		testutil.Repeat(2, 2), // only ranks an inactive candidate
		testutil.Repeat(1),    // empty
		testutil.Repeat(4, 0),
	)

	tally := Tabulate(NewActiveSet([]int{0, 1}), ballots)

	if !tally.Exhausted.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Exhausted = %s, want 3", tally.Exhausted)
	}
	if !tally.Cast.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Cast = %s, want 7", tally.Cast)
	}
}

func TestTabulate_ConservesWeight(t *testing.T) {
	ballots := []models.Ballot{
		models.NewBallot("a", testutil.Dec(t, "1"), []int{0, 3}),
		models.NewBallot("b", testutil.Dec(t, "2.5"), []int{3}),
		models.NewBallot("c", testutil.Dec(t, "0.33333"), []int{1, 2}),
		models.NewBallot("d", testutil.Dec(t, "1"), nil),
		models.NewBallot("e", testutil.Dec(t, "4.2"), []int{2, 0, 1}),
	}

	sets := [][]int{{0, 1, 2, 3}, {0, 1, 2}, {1, 2}, {0}, {3}}
	for _, set := range sets {
		tally := Tabulate(NewActiveSet(set), ballots)
		got := tally.Counted().Add(tally.Exhausted)
		if !got.Equal(tally.Cast) {
			t.Errorf("active %v: counted+exhausted = %s, cast = %s", set, got, tally.Cast)
		}
		if !tally.Cast.Equal(TotalWeight(ballots)) {
			t.Errorf("active %v: cast = %s, want %s", set, tally.Cast, TotalWeight(ballots))
		}
	}
}

func TestActiveSet_WithoutLeavesOriginal(t *testing.T) {
	s := NewActiveSet([]int{2, 0, 1})
	reduced := s.Without(1)

	if s.Len() != 3 || !s.Contains(1) {
		t.Error("Without mutated the original set")
	}
	if reduced.Len() != 2 || reduced.Contains(1) {
		t.Errorf("reduced set = %v", reduced.Sorted())
	}
	if got := s.Sorted(); got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Sorted() = %v, want [0 1 2]", got)
	}
}

func TestActiveSet_SortedAscending(t *testing.T) {
	s := NewActiveSet([]int{7, 2, 9, 0, 4})

	got := s.Sorted()
	want := []int{0, 2, 4, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", got, want)
		}
	}

	if got := s.Without(4).Sorted(); len(got) != 4 || got[2] != 7 {
		t.Errorf("Without(4).Sorted() = %v, want [0 2 7 9]", got)
	}
}

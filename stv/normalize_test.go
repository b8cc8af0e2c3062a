// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-stv/models"
	"github.com/danielhkuo/quickly-stv/testutil"
)

func TestNormalizeSupervotes(t *testing.T) {
	regular := testutil.Concat(
		testutil.Repeat(2, 0, 1),
		testutil.Repeat(1, 1),
		testutil.Repeat(2), // empty ballots do not add mass
	)
	exec := []models.Ballot{
		models.NewBallot("e1", decimal.Zero, []int{1}),
		models.NewBallot("e2", decimal.Zero, []int{0}),
	}

	merged, norm, err := NormalizeSupervotes(regular, exec)
	if err != nil {
		t.Fatalf("NormalizeSupervotes() error = %v", err)
	}

	if !norm.RegularMass.Equal(decimal.NewFromInt(3)) {
		t.Errorf("RegularMass = %s, want 3", norm.RegularMass)
	}
	if norm.Supervotes != 2 {
		t.Errorf("Supervotes = %d, want 2", norm.Supervotes)
	}
	if !norm.Weight.Equal(testutil.Dec(t, "1.5")) {
		t.Errorf("Weight = %s, want 1.5", norm.Weight)
	}
	if !norm.SupervoteMass.Equal(norm.RegularMass) {
		t.Errorf("SupervoteMass = %s, want %s", norm.SupervoteMass, norm.RegularMass)
	}

	if len(merged) != len(regular)+len(exec) {
		t.Fatalf("merged has %d ballots, want %d", len(merged), len(regular)+len(exec))
	}
	for i, b := range merged[len(regular):] {
		if !b.Weight.Equal(norm.Weight) {
			t.Errorf("supervote %d weight = %s, want %s", i, b.Weight, norm.Weight)
		}
	}

	// Inputs are untouched.
	for _, b := range exec {
		if !b.Weight.IsZero() {
			t.Errorf("input supervote mutated: weight = %s", b.Weight)
		}
	}
}

func TestNormalizeSupervotes_NoSupervotes(t *testing.T) {
	_, _, err := NormalizeSupervotes(testutil.Repeat(3, 0), nil)
	if !errors.Is(err, ErrNoSupervotes) {
		t.Fatalf("expected ErrNoSupervotes, got %v", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Field != "supervotes" {
		t.Errorf("Field = %q, want supervotes", cfgErr.Field)
	}
}

func TestNormalizeSupervotes_MassMatchesWithinRounding(t *testing.T) {
	regular := testutil.Repeat(1000, 0)

	for k := 1; k <= 50; k++ {
		exec := testutil.Repeat(k, 1)
		_, norm, err := NormalizeSupervotes(regular, exec)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}

		// Each supervote weight is off by at most half a unit in the last
		// kept digit.
		msd := int32(norm.Weight.NumDigits()) + norm.Weight.Exponent() - 1
		ulp := decimal.New(1, msd-int32(Precision)+1)
		tolerance := ulp.Mul(decimal.NewFromInt(int64(k))).Div(decimal.NewFromInt(2))

		diff := norm.SupervoteMass.Sub(norm.RegularMass).Abs()
		if diff.GreaterThan(tolerance) {
			t.Errorf("k=%d: supervote mass %s differs from %s by %s (tolerance %s)",
				k, norm.SupervoteMass, norm.RegularMass, diff, tolerance)
		}
	}
}

func TestNormalizeSupervotes_EmptyRegularPool(t *testing.T) {
	_, norm, err := NormalizeSupervotes(testutil.Repeat(4), testutil.Repeat(3, 0))
	if err != nil {
		t.Fatalf("NormalizeSupervotes() error = %v", err)
	}
	if !norm.Weight.IsZero() {
		t.Errorf("Weight = %s, want 0", norm.Weight)
	}
}

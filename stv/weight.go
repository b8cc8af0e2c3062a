// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-stv/models"
)

// Precision is the number of significant digits kept by weight divisions.
const Precision = 5

// divisionScale bounds the exact quotient before it is rounded to Precision
// significant digits.
const divisionScale = 16

// RoundSignificant rounds d to the given number of significant digits using
// banker's rounding. Zero is returned unchanged.
func RoundSignificant(d decimal.Decimal, digits int) decimal.Decimal {
	if d.IsZero() || digits <= 0 {
		return d
	}
	// value = coefficient * 10^exponent, so the most significant digit sits
	// at 10^(numDigits+exponent-1).
	msd := int32(d.NumDigits()) + d.Exponent() - 1
	places := int32(digits) - 1 - msd
	return d.RoundBank(places)
}

// Quotient divides n by k and rounds the result to Precision significant
// digits.
func Quotient(n decimal.Decimal, k int) decimal.Decimal {
	q := n.DivRound(decimal.NewFromInt(int64(k)), divisionScale)
	return RoundSignificant(q, Precision)
}

// Mass returns the summed weight of every ballot that ranks at least one
// candidate. Empty ballots carry no influence and are left out.
func Mass(ballots []models.Ballot) decimal.Decimal {
	mass := decimal.Zero
	for _, b := range ballots {
		if b.Empty() {
			continue
		}
		mass = mass.Add(b.Weight)
	}
	return mass
}

// TotalWeight sums every ballot's weight, empty ballots included.
func TotalWeight(ballots []models.Ballot) decimal.Decimal {
	total := decimal.Zero
	for _, b := range ballots {
		total = total.Add(b.Weight)
	}
	return total
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-stv/models"
)

// Normalization records how the supervote weight was derived.
type Normalization struct {
	RegularMass   decimal.Decimal
	Supervotes    int
	Weight        decimal.Decimal
	SupervoteMass decimal.Decimal
}

// NormalizeSupervotes gives every supervote ballot the weight M/K, where M
// is the mass of the regular pool and K the number of supervote ballots, so
// the supervote pool as a whole carries the same influence as all regular
// voters combined. The returned slice holds the regular ballots followed by
// the reweighted supervotes; neither input is modified.
func NormalizeSupervotes(regular, supervotes []models.Ballot) ([]models.Ballot, Normalization, error) {
	if len(supervotes) == 0 {
		return nil, Normalization{}, configErrorf("supervotes", ErrNoSupervotes,
			"regular ballots=%d", len(regular))
	}

	mass := Mass(regular)
	w := Quotient(mass, len(supervotes))

	merged := make([]models.Ballot, 0, len(regular)+len(supervotes))
	merged = append(merged, regular...)

	supervoteMass := decimal.Zero
	for _, b := range supervotes {
		merged = append(merged, b.WithWeight(w))
		supervoteMass = supervoteMass.Add(w)
	}

	return merged, Normalization{
		RegularMass:   mass,
		Supervotes:    len(supervotes),
		Weight:        w,
		SupervoteMass: supervoteMass,
	}, nil
}

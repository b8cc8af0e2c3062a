// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"math/rand/v2"
)

// NewRand returns a deterministic generator for tie-breaking. The same seed
// always yields the same sequence of draws.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed picks a fresh seed for runs where the operator supplied none.
func RandomSeed() uint64 {
	return rand.Uint64()
}

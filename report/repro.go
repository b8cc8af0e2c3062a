// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Invocation is everything needed to rerun a count unattended.
type Invocation struct {
	Program      string
	Seed         uint64
	Eliminated   []int // 0-indexed
	BreakTies    bool
	ExecVotes    string
	OfficesFile  string
	NoPreference string // empty when the default was used
	File         string
	DatabaseType string
	PollID       string
	Office       string
}

// Command renders the invocation as a shell command line. Database URLs
// are never printed; they are expected in DATABASE_URL.
func (inv Invocation) Command() string {
	args := []string{inv.Program, "-y", "-seed", strconv.FormatUint(inv.Seed, 10)}

	if len(inv.Eliminated) > 0 {
		nums := make([]string, len(inv.Eliminated))
		for i, c := range inv.Eliminated {
			nums[i] = strconv.Itoa(c + 1)
		}
		args = append(args, "-elim", strings.Join(nums, ","))
	}
	if inv.BreakTies {
		args = append(args, "-break-ties")
	}
	if inv.ExecVotes != "" {
		args = append(args, "-exec-votes", quote(inv.ExecVotes))
	}
	if inv.OfficesFile != "" {
		args = append(args, "-offices", quote(inv.OfficesFile))
	}
	if inv.NoPreference != "" {
		args = append(args, "-no-preference", quote(inv.NoPreference))
	}

	if inv.PollID != "" {
		args = append(args, "-t", inv.DatabaseType, "-poll", quote(inv.PollID))
	} else {
		args = append(args, quote(inv.File))
	}
	args = append(args, inv.Office)

	return strings.Join(args, " ")
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Reproducibility prints the rerun instructions and the ballot digest.
func (p *Printer) Reproducibility(inv Invocation, shortDigest string) {
	p.Printf("\nReproducibility:\n")
	p.Printf("You should be able to reproduce these election results by running:\n")
	p.Printf("    %s\n", inv.Command())
	if inv.PollID != "" {
		p.Printf("(with DATABASE_URL pointing at the same database)\n")
	}
	if shortDigest != "" {
		p.Printf("Ballot digest: %s\n", shortDigest)
	}
	p.Printf("\n")
}

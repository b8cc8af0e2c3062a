// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/danielhkuo/quickly-stv/models"
	"github.com/danielhkuo/quickly-stv/stv"
)

// Printer writes human readable election progress.
type Printer struct {
	out   io.Writer
	names []string

	heading *color.Color
	warn    *color.Color
	alert   *color.Color
	win     *color.Color
}

// NewPrinter returns a Printer for the given candidate names. colorize is
// usually the result of a TTY check on out.
func NewPrinter(out io.Writer, names []string, colorize bool) *Printer {
	p := &Printer{
		out:     out,
		names:   names,
		heading: color.New(color.Bold),
		warn:    color.New(color.FgYellow),
		alert:   color.New(color.FgHiRed, color.Bold),
		win:     color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.heading, p.warn, p.alert, p.win} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Printf writes plain text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Warnf writes a highlighted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.warn.Fprintf(p.out, "WARNING: "+format+"\n", args...)
}

func (p *Printer) name(c int) string {
	if c >= 0 && c < len(p.names) {
		return p.names[c]
	}
	return fmt.Sprintf("candidate #%d", c+1)
}

// Candidates lists the detected candidates, 1-indexed.
func (p *Printer) Candidates() {
	p.Printf("Detected %d candidates:\n", len(p.names))
	for i, name := range p.names {
		p.Printf("    %d. %s\n", i+1, name)
	}
}

// Eliminated lists candidates removed before counting.
func (p *Printer) Eliminated(candidates []int) {
	p.Printf("Candidates to be eliminated:\n")
	for _, c := range candidates {
		p.Printf("    - %s\n", p.name(c))
	}
}

// BallotSummary reports how many ballots a pool holds.
func (p *Printer) BallotSummary(kind string, total, empty int) {
	p.Printf("Created %s %s.\n", humanize.Comma(int64(total)), kind)
	if empty > 0 {
		p.Warnf("Detected %s empty %s.", humanize.Comma(int64(empty)), kind)
	}
}

// Normalization reports the derived supervote weight.
func (p *Printer) Normalization(n stv.Normalization) {
	p.Printf("Detected a total club 'voting mass' of %s\n", n.RegularMass)
	p.Printf("Calculated exec vote weight of %s across %s exec ballots\n",
		n.Weight, humanize.Comma(int64(n.Supervotes)))
	p.Printf("Exec votes have mass of %s.\n", n.SupervoteMass)
}

// Round prints one round's standings and decision.
func (p *Printer) Round(r stv.Round) {
	p.heading.Fprintf(p.out, "Round %d\n", r.Number)
	p.standings(r.Standings)
	if r.Exhausted.IsPositive() {
		p.Printf("  (%s weight on exhausted ballots)\n", r.Exhausted)
	}

	if r.Tie {
		p.Printf("There is a %d-way tie for last place: %s.\n", len(r.Losers), p.list(r.Losers))
		if r.TieBroken {
			p.Printf("We will choose one to eliminate by random chance.\n")
		}
	}

	if r.Eliminated == stv.NoCandidate {
		return
	}
	p.Printf("The candidate chosen for elimination was %s.\n", p.name(r.Eliminated))
	p.Printf("Removing them, and recounting votes...\n\n")
}

func (p *Printer) standings(standings []stv.Standing) {
	for i, s := range standings {
		p.Printf("  %s. %s with %s votes.\n", humanize.Ordinal(i+1), p.name(s.Candidate), s.Votes)
	}
}

func (p *Printer) list(candidates []int) string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = p.name(c)
	}
	return strings.Join(names, ", ")
}

// Outcome prints the final result.
func (p *Printer) Outcome(o *stv.Outcome, office string) {
	p.Printf("\nDone counting!\n")

	if !o.Decided() {
		p.alert.Fprintf(p.out, "\n!!! THE ELECTION ENDED IN A TIE. !!!\n")
		p.Printf("  (Because -break-ties is not set, there is no way to resolve this tie.)\n")
		p.Printf("The count stands as follows:\n")
		p.standings(stv.Standings(o.FinalTotals))
		return
	}

	p.Printf("There are %d winner(s). They are:\n", len(o.Winners))
	for _, c := range o.Winners {
		p.win.Fprintf(p.out, "    %s\n", p.name(c))
	}
	p.Printf("Congratulations to our new %s(s)!\n", office)
}

// Status renders an outcome status for reports.
func Status(o *stv.Outcome) string {
	if o.Decided() {
		return models.StatusDecided
	}
	return models.StatusUnresolvedTie
}

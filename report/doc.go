// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package report renders election progress and results.

Printer writes the human readable transcript: detected candidates, ballot
counts, each round's standings, and the final winners or tie banner. Color
comes from fatih/color and is switched off for non-terminals.

BuildReport and WriteJSON produce the machine readable form used by -json.
Candidate indices are translated to names; weights are JSON numbers.

Invocation.Command prints a command line that reruns the same count
unattended, including the seed and any preemptive eliminations.
*/
package report

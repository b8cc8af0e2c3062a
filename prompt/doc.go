// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package prompt implements the operator confirmations shown while ballots
are loaded.

	p := prompt.New(os.Stdin, os.Stdout, cfg.AssumeYes, prompt.IsTerminal(os.Stdin))
	ok, err := p.Confirm("Is this correct?")

With -y every Confirm answers yes and every ConfirmNo answers no, so a run
never waits on input. Answers may also be piped in; running out of input is
ErrNoAnswer. Pause only waits when standard input is a terminal.
*/
package prompt

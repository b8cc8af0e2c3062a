// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package offices maps elected offices to the number of seats each fills.

Default returns the built-in table. Load reads a TOML file whose offices
extend the defaults, or replace them when replace = true:

	replace = false

	[offices.MEET_COORDINATOR]
	seats = 2

	[offices.HISTORIAN]
	seats = 1

Office names are matched exactly.
*/
package offices

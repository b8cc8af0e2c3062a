// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Usage

	quickly-stv [flags] <input.csv> <OFFICE>
	quickly-stv [flags] -poll <id> <OFFICE>

Flags may appear before, between, or after the positionals.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-list-offices     Print offices and seat counts
	-y                Answer yes to every confirmation
	-seed N           Random seed for tie-breaking
	-pause            Wait for enter between rounds (alias -ryan-mode)
	-elim 1,2         Candidates to eliminate before counting (1-indexed)
	-break-ties       Settle final-round ties by chance
	-exec-votes path  Exec (supervote) ballots
	-offices path     TOML office table
	-no-preference s  Cell text meaning "not ranked"
	-d, -t, -poll     Read ballots from a database
	-json             Emit the outcome as JSON
	-no-color         Disable colored output
	-log-level level  debug, info, warn, error

# Environment Variables

Flags fall back to environment variables:

	STV_SEED          → -seed
	STV_OFFICES_FILE  → -offices
	STV_NO_PREFERENCE → -no-preference
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t (default: sqlite)
	STV_POLL_ID       → -poll
	NO_COLOR          → -no-color
	LOG_LEVEL         → -log-level

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file first; variables already set are left alone.

# Validation

ParseFlags returns ErrUsage when the positionals are missing, ErrBadSeed
for a seed that is not an unsigned integer, and ErrSourceMode when both a
CSV file and -poll are given. -elim is kept as text and checked against the
candidate count once ballots are loaded.
*/
package cliparse

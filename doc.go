// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the quickly-stv command, a ranked-choice election
tabulator for club officer elections.

Ballots come from a Google Forms CSV export or a SQL database. Each round
every ballot counts for its highest ranked remaining candidate and the last
place candidate is eliminated, until only the office's seat count remains.

# Running a Count

	quickly-stv votes.csv PRESIDENT

Unattended, with a fixed seed and exec ballots:

	quickly-stv -y -seed 42 -exec-votes exec.csv votes.csv TREASURER

From a database:

	DATABASE_URL=file:club.db quickly-stv -t sqlite -poll spring-2025 PRESIDENT

# Configuration

Settings come from flags, then environment variables, then a .env file.
See package cliparse for the full list.

  - STV_SEED (-seed): tie-break seed (random and printed when omitted)
  - STV_OFFICES_FILE (-offices): TOML office table
  - DATABASE_URL (-d), DATABASE_TYPE (-t), STV_POLL_ID (-poll)
  - LOG_LEVEL (-log-level): slog level, logs go to stderr

# Exit Codes

  - 0: the count finished (decided or ended in a tie)
  - 1: the count could not run (bad input, configuration, or abort)
  - 2: usage error

# Architecture

  - stv: counting rounds, elimination policy, supervote normalization
  - ballotcsv: Google Forms CSV parsing
  - store: read-only SQL ballot source (PostgreSQL, SQLite)
  - offices: office table and seat counts
  - report: text transcript, JSON output, reproducibility line
  - prompt: terminal confirmations
  - audit: run IDs and ballot digests
  - models: shared ballot and result types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main

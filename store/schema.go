// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the ballot tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types and syntax shared by PostgreSQL and SQLite.
const schema = `
-- Polls (one per office election)
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    office TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT ''
);

-- Candidates, in ballot column order
CREATE TABLE IF NOT EXISTS candidate (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL CHECK (seq >= 0),
    name TEXT NOT NULL,
    PRIMARY KEY (poll_id, seq)
);

-- Ballots
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    submitted_at TEXT NOT NULL,
    pool TEXT NOT NULL DEFAULT 'regular' CHECK (pool IN ('regular', 'supervote')),
    weight TEXT NOT NULL DEFAULT '1'
);

CREATE INDEX IF NOT EXISTS idx_ballot_poll_id ON ballot(poll_id);

-- Rankings (one row per ranked candidate per ballot)
CREATE TABLE IF NOT EXISTS ranking (
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    candidate_seq INTEGER NOT NULL,
    ordinal INTEGER NOT NULL CHECK (ordinal >= 1),
    PRIMARY KEY (ballot_id, candidate_seq)
);

CREATE INDEX IF NOT EXISTS idx_ranking_ballot_id ON ranking(ballot_id);
`

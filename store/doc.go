// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store reads ranked ballots from a SQL database.

It is an alternative to CSV input for elections whose ballots were
collected into PostgreSQL or SQLite. The package only reads; tabulation
results are never written back.

# Connecting

	db, err := store.Open(store.TypePostgres, "postgres://...")
	db, err := store.Open(store.TypeSQLite, "file:ballots.db")

Drivers: github.com/lib/pq and modernc.org/sqlite.

# Schema Creation

CreateSchema initializes all required tables:

	if err := store.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: one election (office, title)
  - candidate: candidate names by column sequence (0-based, contiguous)
  - ballot: submission time, pool (regular or supervote), decimal weight
  - ranking: a ballot's ordinal for one candidate

# Relationships

	poll 1──* candidate
	poll 1──* ballot
	ballot 1──* ranking

# Loading

	poll, err := store.LoadPoll(ctx, db, "pres-2020")

Ballots are ordered by submission time then ID. Within a ballot,
candidates are ordered by ordinal; equal ordinals keep column order.
*/
package store

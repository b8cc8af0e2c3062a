// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-stv/models"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

var (
	ErrPollNotFound        = errors.New("poll not found")
	ErrUnsupportedType     = errors.New("unsupported database type")
	ErrInvalidCandidates   = errors.New("candidate sequence must be contiguous from 0")
	ErrInvalidRanking      = errors.New("ranking references unknown candidate")
	ErrInvalidBallotWeight = errors.New("invalid ballot weight")
)

// Poll is one office election loaded from the database.
type Poll struct {
	ID         string
	Office     string
	Title      string
	Candidates []string
	Regular    []models.Ballot
	Supervotes []models.Ballot
}

// Open connects to a database of the given type and verifies the
// connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, dbType)
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

// LoadPoll reads a poll's candidates and both ballot pools. Ballots come
// back ordered by submission time then ID so repeated loads tabulate
// identically. Nothing is written.
func LoadPoll(ctx context.Context, db *sql.DB, pollID string) (*Poll, error) {
	poll := &Poll{ID: pollID}
	err := db.QueryRowContext(ctx, `
		SELECT office, title FROM poll WHERE id = $1
	`, pollID).Scan(&poll.Office, &poll.Title)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	poll.Candidates, err = getCandidates(ctx, db, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidates: %w", err)
	}

	if err := getBallots(ctx, db, poll); err != nil {
		return nil, fmt.Errorf("failed to get ballots: %w", err)
	}

	return poll, nil
}

// getCandidates retrieves candidate names in column order
func getCandidates(ctx context.Context, db *sql.DB, pollID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT seq, name FROM candidate WHERE poll_id = $1 ORDER BY seq
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var seq int
		var name string
		if err := rows.Scan(&seq, &name); err != nil {
			return nil, err
		}
		if seq != len(names) {
			return nil, fmt.Errorf("%w: got %d at position %d", ErrInvalidCandidates, seq, len(names))
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// getBallots retrieves every ballot with its rankings, one row per ranked
// candidate. Within a ballot rows arrive by ordinal, then candidate order,
// so equal ordinals favor the first-listed candidate.
func getBallots(ctx context.Context, db *sql.DB, poll *Poll) error {
	rows, err := db.QueryContext(ctx, `
		SELECT b.id, b.submitted_at, b.pool, b.weight, r.candidate_seq
		FROM ballot b
		LEFT JOIN ranking r ON r.ballot_id = b.id
		WHERE b.poll_id = $1
		ORDER BY b.submitted_at, b.id, r.ordinal, r.candidate_seq
	`, poll.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type pending struct {
		id        string
		timestamp string
		pool      string
		weight    decimal.Decimal
		rankings  []int
	}
	var current *pending

	flush := func() {
		if current == nil {
			return
		}
		b := models.NewBallot(current.timestamp, current.weight, current.rankings)
		if current.pool == models.PoolSupervote {
			poll.Supervotes = append(poll.Supervotes, b)
		} else {
			poll.Regular = append(poll.Regular, b)
		}
	}

	for rows.Next() {
		var id, submittedAt, pool, weight string
		var seq sql.NullInt64
		if err := rows.Scan(&id, &submittedAt, &pool, &weight, &seq); err != nil {
			return err
		}

		if current == nil || current.id != id {
			flush()
			w, err := decimal.NewFromString(weight)
			if err != nil || w.IsNegative() {
				return fmt.Errorf("%w: ballot %s has %q", ErrInvalidBallotWeight, id, weight)
			}
			current = &pending{id: id, timestamp: submittedAt, pool: pool, weight: w}
		}

		if seq.Valid {
			c := int(seq.Int64)
			if c < 0 || c >= len(poll.Candidates) {
				return fmt.Errorf("%w: ballot %s ranks %d", ErrInvalidRanking, id, c)
			}
			current.rankings = append(current.rankings, c)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	flush()

	return nil
}

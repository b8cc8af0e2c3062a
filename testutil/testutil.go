// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-stv/models"
	"github.com/danielhkuo/quickly-stv/store"
)

// FormsQuestion is the question text used in generated CSV headers.
const FormsQuestion = "Rank your choices"

// Dec parses a decimal literal, failing the test on bad input.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Invalid decimal %q: %v", s, err)
	}
	return d
}

// Repeat builds count unit-weight ballots with the same rankings.
func Repeat(count int, rankings ...int) []models.Ballot {
	out := make([]models.Ballot, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, models.NewBallot(fmt.Sprintf("t%d", i), decimal.NewFromInt(1), rankings))
	}
	return out
}

// Concat joins ballot groups into a single slice.
func Concat(groups ...[]models.Ballot) []models.Ballot {
	var out []models.Ballot
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// FixedSource always draws the same index (clamped to n-1).
type FixedSource struct {
	Index int
	Calls int
}

func (s *FixedSource) IntN(n int) int {
	s.Calls++
	if s.Index >= n {
		return n - 1
	}
	return s.Index
}

// FormsHeader builds a Google Forms style header row for the candidates.
func FormsHeader(candidates ...string) []string {
	header := []string{"Timestamp"}
	for _, c := range candidates {
		header = append(header, fmt.Sprintf("%s [%s]", FormsQuestion, c))
	}
	return header
}

// WriteCSV writes rows to a file in a temp directory and returns its path.
func WriteCSV(t *testing.T, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create CSV: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	return path
}

// SetupTestDB opens a private in-memory SQLite database with the full
// schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.Open(store.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection would get its own :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := store.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// CreateTestPoll inserts a poll and its candidates in list order.
func CreateTestPoll(t *testing.T, db *sql.DB, pollID, office string, candidates ...string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO poll (id, office, title)
		VALUES ($1, $2, $3)
	`, pollID, office, "Test Election")
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for seq, name := range candidates {
		_, err := db.Exec(`
			INSERT INTO candidate (poll_id, seq, name)
			VALUES ($1, $2, $3)
		`, pollID, seq, name)
		if err != nil {
			t.Fatalf("Failed to create test candidate: %v", err)
		}
	}
}

// SubmitTestBallot inserts a ballot in the given pool. ranks maps candidate
// seq to the voter's ordinal (1 = first choice).
func SubmitTestBallot(t *testing.T, db *sql.DB, pollID, ballotID, pool, submittedAt, weight string, ranks map[int]int) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO ballot (id, poll_id, submitted_at, pool, weight)
		VALUES ($1, $2, $3, $4, $5)
	`, ballotID, pollID, submittedAt, pool, weight)
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	for seq, ordinal := range ranks {
		_, err := db.Exec(`
			INSERT INTO ranking (ballot_id, candidate_seq, ordinal)
			VALUES ($1, $2, $3)
		`, ballotID, seq, ordinal)
		if err != nil {
			t.Fatalf("Failed to create test ranking: %v", err)
		}
	}
}

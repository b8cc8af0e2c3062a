package ballotcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/quickly-stv/models"
)

// DefaultNoPreference is the cell text Google Forms writes when a voter
// explicitly declines to rank a candidate.
const DefaultNoPreference = "No preference"

var (
	ErrEmptyFile         = errors.New("empty ballot file")
	ErrNoCandidates      = errors.New("no candidate columns in header")
	ErrCandidateMismatch = errors.New("candidate lists do not match")
)

var (
	// "Rank your choices [Candidate Name]"
	candidatePattern = regexp.MustCompile(`^.+\[(.+)\]$`)
	// "1st choice", "2nd choice", "13th choice"
	ordinalPattern = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th) choice$`)
)

var folder = cases.Fold()

// HeaderError reports a candidate column whose header could not be parsed.
type HeaderError struct {
	Column int // 1-indexed spreadsheet column
	Header string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("failed to extract candidate from header for column %d: %q", e.Column, e.Header)
}

// Options controls how ballot cells are read.
type Options struct {
	NoPreference string
}

// Sheet is a parsed ballot file.
type Sheet struct {
	Candidates []string
	Ballots    []models.Ballot
	Empty      int // ballots ranking nobody
}

// ReadFile opens path and parses it as a Google Forms ranked-choice export.
func ReadFile(path string, opts Options) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheet, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return sheet, nil
}

// Parse reads a header row followed by one row per ballot. Column 0 holds
// the submission timestamp; each further column holds one candidate.
func Parse(r io.Reader, opts Options) (*Sheet, error) {
	if opts.NoPreference == "" {
		opts.NoPreference = DefaultNoPreference
	}
	weight := decimal.NewFromInt(1)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	candidates, err := ParseHeader(header)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{Candidates: candidates}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		cells := row[1:]
		if len(cells) > len(candidates) {
			cells = cells[:len(candidates)]
		}
		b := models.NewBallot(cleanCell(row[0]), weight, ParseRanking(cells, opts.NoPreference))
		if b.Empty() {
			sheet.Empty++
		}
		sheet.Ballots = append(sheet.Ballots, b)
	}

	return sheet, nil
}

// ParseHeader extracts candidate names from every column after the first.
func ParseHeader(header []string) ([]string, error) {
	if len(header) < 2 {
		return nil, ErrNoCandidates
	}

	candidates := make([]string, 0, len(header)-1)
	for i, col := range header[1:] {
		m := candidatePattern.FindStringSubmatch(cleanCell(col))
		if m == nil {
			return nil, &HeaderError{Column: i + 2, Header: col}
		}
		candidates = append(candidates, NormalizeName(m[1]))
	}
	return candidates, nil
}

type choice struct {
	candidate int
	rank      int
}

// ParseRanking turns one row of per-candidate cells into candidate indices
// ordered by preference. Only relative order survives: ranks 1, 3, 7 read
// the same as 1, 2, 3. Cells that are blank, the no-preference text, or not
// an ordinal leave the candidate unranked. Candidates given the same ordinal
// keep column order.
func ParseRanking(cells []string, noPreference string) []int {
	skip := folder.String(strings.TrimSpace(noPreference))

	var choices []choice
	for i, cell := range cells {
		cell = cleanCell(cell)
		if cell == "" || folder.String(cell) == skip {
			continue
		}
		m := ordinalPattern.FindStringSubmatch(cell)
		if m == nil {
			continue
		}
		rank, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		choices = append(choices, choice{candidate: i, rank: rank})
	}

	sort.SliceStable(choices, func(i, j int) bool {
		return choices[i].rank < choices[j].rank
	})

	rankings := make([]int, len(choices))
	for i, c := range choices {
		rankings[i] = c.candidate
	}
	return rankings
}

// NormalizeName applies NFKC normalization and collapses whitespace.
func NormalizeName(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// SameCandidates reports whether two sheets list identical candidates in the
// same order.
func SameCandidates(a, b []string) bool {
	return slices.Equal(a, b)
}

// CheckCandidates returns ErrCandidateMismatch, naming the first difference,
// when b does not list exactly a's candidates.
func CheckCandidates(a, b []string) error {
	if SameCandidates(a, b) {
		return nil
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d candidates vs %d", ErrCandidateMismatch, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%w: column %d is %q vs %q", ErrCandidateMismatch, i+2, a[i], b[i])
		}
	}
	return ErrCandidateMismatch
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package offices

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/naoina/toml"
	"golang.org/x/exp/maps"

	"github.com/danielhkuo/quickly-stv/models"
)

var (
	ErrUnknownOffice = errors.New("unknown office")
	ErrInvalidSeats  = errors.New("office must have at least one seat")
)

// defaults lists the club's elected offices and their seat counts.
var defaults = map[string]int{
	"PRESIDENT":                  1,
	"VICE_PRESIDENT":             1,
	"TREASURER":                  1,
	"MENS_WORKOUT_COORDINATOR":   1,
	"WOMENS_WORKOUT_COORDINATOR": 1,
	"SPRINT_COORDINATOR":         1,
	"MEET_COORDINATOR":           2,
	"MENS_SOCIAL_CHAIR":          1,
	"WOMENS_SOCIAL_CHAIR":        1,
	"FUNDRAISING_CHAIR":          1,
	"WEBMASTER":                  1,
	"MENS_RECRUITMENT_CHAIR":     1,
	"WOMENS_RECRUITMENT_CHAIR":   1,
	"SECRETARY":                  1,
	"TEAM_RELATIONS_CHAIR":       1,
}

// Table maps office names to seat counts.
type Table struct {
	seats map[string]int
}

// tomlFile is the on-disk layout:
//
//	replace = false
//
//	[offices.PRESIDENT]
//	seats = 1
type tomlFile struct {
	Replace bool
	Offices map[string]tomlOffice
}

type tomlOffice struct {
	Seats int
}

// Default returns the built-in office table.
func Default() *Table {
	seats := make(map[string]int, len(defaults))
	maps.Copy(seats, defaults)
	return &Table{seats: seats}
}

// Load reads a TOML office file. Its offices extend the defaults, or
// replace them entirely when the file sets replace = true.
func Load(path string) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open office file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Parse decodes TOML office definitions from r.
func Parse(r io.Reader) (*Table, error) {
	var file tomlFile
	if err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, err
	}

	t := Default()
	if file.Replace {
		t.seats = make(map[string]int, len(file.Offices))
	}
	for name, o := range file.Offices {
		if o.Seats < 1 {
			return nil, fmt.Errorf("%w: %s has %d", ErrInvalidSeats, name, o.Seats)
		}
		t.seats[name] = o.Seats
	}
	return t, nil
}

// Lookup returns the office with its seat count.
func (t *Table) Lookup(name string) (models.Office, error) {
	seats, ok := t.seats[name]
	if !ok {
		return models.Office{}, fmt.Errorf("%w: %q (choose from %s)",
			ErrUnknownOffice, name, strings.Join(t.Names(), ", "))
	}
	return models.Office{Name: name, Seats: seats}, nil
}

// Names lists every office alphabetically.
func (t *Table) Names() []string {
	names := maps.Keys(t.seats)
	slices.Sort(names)
	return names
}

// All lists every office alphabetically with its seat count.
func (t *Table) All() []models.Office {
	names := t.Names()
	out := make([]models.Office, len(names))
	for i, name := range names {
		out[i] = models.Office{Name: name, Seats: t.seats[name]}
	}
	return out
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package offices

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-stv/models"
)

func TestDefault(t *testing.T) {
	table := Default()

	office, err := table.Lookup("MEET_COORDINATOR")
	require.NoError(t, err)
	assert.Equal(t, models.Office{Name: "MEET_COORDINATOR", Seats: 2}, office)

	office, err = table.Lookup("PRESIDENT")
	require.NoError(t, err)
	assert.Equal(t, 1, office.Seats)

	assert.Len(t, table.Names(), 15)
	assert.True(t, strings.Compare(table.Names()[0], table.Names()[1]) < 0, "names are sorted")
}

func TestNames_SortedAfterExtending(t *testing.T) {
	table, err := Parse(strings.NewReader("[offices.AAA_FIRST]\nseats = 1\n[offices.ZZZ_LAST]\nseats = 1\n"))
	require.NoError(t, err)

	names := table.Names()
	assert.True(t, slices.IsSorted(names), "names are sorted: %v", names)
	assert.Equal(t, "AAA_FIRST", names[0])
	assert.Equal(t, "ZZZ_LAST", names[len(names)-1])

	all := table.All()
	require.Len(t, all, len(names))
	assert.Equal(t, "AAA_FIRST", all[0].Name)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Default().Lookup("president")
	assert.ErrorIs(t, err, ErrUnknownOffice)
	assert.Contains(t, err.Error(), "PRESIDENT")
}

func TestDefault_IsACopy(t *testing.T) {
	a := Default()
	a.seats["PRESIDENT"] = 9

	office, err := Default().Lookup("PRESIDENT")
	require.NoError(t, err)
	assert.Equal(t, 1, office.Seats)
}

func TestParse_ExtendsDefaults(t *testing.T) {
	data := `
[offices.HISTORIAN]
seats = 1

[offices.MEET_COORDINATOR]
seats = 3
`
	table, err := Parse(strings.NewReader(data))
	require.NoError(t, err)

	office, err := table.Lookup("HISTORIAN")
	require.NoError(t, err)
	assert.Equal(t, 1, office.Seats)

	office, err = table.Lookup("MEET_COORDINATOR")
	require.NoError(t, err)
	assert.Equal(t, 3, office.Seats)

	_, err = table.Lookup("PRESIDENT")
	assert.NoError(t, err, "defaults are kept")
}

func TestParse_Replace(t *testing.T) {
	data := `
replace = true

[offices.CAPTAIN]
seats = 2
`
	table, err := Parse(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []models.Office{{Name: "CAPTAIN", Seats: 2}}, table.All())
}

func TestParse_InvalidSeats(t *testing.T) {
	data := `
[offices.GHOST]
seats = 0
`
	_, err := Parse(strings.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidSeats)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offices.toml")
	require.NoError(t, os.WriteFile(path, []byte("[offices.SCRIBE]\nseats = 1\n"), 0o600))

	table, err := Load(path)
	require.NoError(t, err)

	_, err = table.Lookup("SCRIBE")
	assert.NoError(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

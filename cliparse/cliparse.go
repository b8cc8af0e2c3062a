package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrUsage      = errors.New("usage: quickly-stv [flags] <input.csv> <OFFICE>")
	ErrBadSeed    = errors.New("invalid seed")
	ErrBadLevel   = errors.New("invalid log level")
	ErrSourceMode = errors.New("give either a CSV file or -poll, not both")
)

type Config struct {
	File   string
	Office string

	ListOffices bool
	AssumeYes   bool
	Pause       bool
	BreakTies   bool

	Seed    uint64
	HasSeed bool

	// Elim is the raw -elim list of 1-indexed candidates. ElimSet
	// distinguishes "-elim ''" (nobody) from an absent flag (ask).
	Elim    string
	ElimSet bool

	ExecVotes    string
	OfficesFile  string
	NoPreference string

	DatabaseURL  string
	DatabaseType string
	PollID       string

	JSON     bool
	NoColor  bool
	LogLevel slog.Level
}

// FromDatabase reports whether ballots come from SQL rather than a CSV file.
func (c Config) FromDatabase() bool {
	return c.PollID != ""
}

type elimValue struct{ cfg *Config }

func (v elimValue) String() string {
	if v.cfg == nil {
		return ""
	}
	return v.cfg.Elim
}

func (v elimValue) Set(s string) error {
	v.cfg.Elim = s
	v.cfg.ElimSet = true
	return nil
}

// LoadDotEnv loads a .env file into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func newFlagSet(cfg *Config, seed, logLevel *string) *flag.FlagSet {
	fs := flag.NewFlagSet("quickly-stv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&cfg.ListOffices, "list-offices", false, "List offices and their seat counts")
	fs.BoolVar(&cfg.AssumeYes, "y", false, "Answer yes to every confirmation")
	fs.StringVar(seed, "seed", "", "Random seed for tie-breaking (env STV_SEED)")
	fs.BoolVar(&cfg.Pause, "pause", false, "Wait for enter between rounds")
	fs.BoolVar(&cfg.Pause, "ryan-mode", false, "Alias for -pause")
	fs.Var(elimValue{cfg}, "elim", "Comma separated candidate numbers to eliminate before counting")
	fs.BoolVar(&cfg.BreakTies, "break-ties", false, "Settle final-round ties by chance")
	fs.StringVar(&cfg.ExecVotes, "exec-votes", "", "CSV of exec (supervote) ballots")
	fs.StringVar(&cfg.OfficesFile, "offices", "", "TOML office table (env STV_OFFICES_FILE)")
	fs.StringVar(&cfg.NoPreference, "no-preference", "", "Cell text meaning a candidate was not ranked (env STV_NO_PREFERENCE)")

	// Ballot source (can be CLI args or env)
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (env DATABASE_URL)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type, sqlite or postgres (env DATABASE_TYPE)")
	fs.StringVar(&cfg.PollID, "poll", "", "Poll ID to load ballots from (env STV_POLL_ID)")

	// Output
	fs.BoolVar(&cfg.JSON, "json", false, "Emit the outcome as JSON")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output (env NO_COLOR)")
	fs.StringVar(logLevel, "log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")

	return fs
}

// PrintDefaults writes usage and flag help to w.
func PrintDefaults(w io.Writer) {
	var cfg Config
	var seed, logLevel string
	fs := newFlagSet(&cfg, &seed, &logLevel)
	fs.SetOutput(w)
	fmt.Fprintln(w, ErrUsage.Error())
	fs.PrintDefaults()
}

// ParseFlags parses flags and positionals, which may be interleaved, and
// fills unset values from the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var seed, logLevel string

	fs := newFlagSet(&cfg, &seed, &logLevel)

	var positionals []string
	for {
		if err := fs.Parse(args); err != nil {
			return Config{}, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		positionals = append(positionals, rest[0])
		args = rest[1:]
	}

	// Fall back to environment variables
	if seed == "" {
		seed = os.Getenv("STV_SEED")
	}
	if seed != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(seed), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %q", ErrBadSeed, seed)
		}
		cfg.Seed, cfg.HasSeed = n, true
	}
	if cfg.OfficesFile == "" {
		cfg.OfficesFile = os.Getenv("STV_OFFICES_FILE")
	}
	if cfg.NoPreference == "" {
		cfg.NoPreference = os.Getenv("STV_NO_PREFERENCE")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.PollID == "" {
		cfg.PollID = os.Getenv("STV_POLL_ID")
	}
	if !cfg.NoColor {
		_, cfg.NoColor = os.LookupEnv("NO_COLOR")
	}
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("%w: %q", ErrBadLevel, logLevel)
		}
	}

	if cfg.ListOffices {
		return cfg, nil
	}

	if err := cfg.assignPositionals(positionals); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) assignPositionals(positionals []string) error {
	if c.FromDatabase() {
		switch len(positionals) {
		case 1:
			c.Office = positionals[0]
		case 2:
			return ErrSourceMode
		default:
			return ErrUsage
		}
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		return nil
	}

	if len(positionals) != 2 {
		return ErrUsage
	}
	c.File, c.Office = positionals[0], positionals[1]
	return nil
}

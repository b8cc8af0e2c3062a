package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielhkuo/quickly-stv/audit"
	"github.com/danielhkuo/quickly-stv/ballotcsv"
	"github.com/danielhkuo/quickly-stv/cliparse"
	"github.com/danielhkuo/quickly-stv/models"
	"github.com/danielhkuo/quickly-stv/offices"
	"github.com/danielhkuo/quickly-stv/prompt"
	"github.com/danielhkuo/quickly-stv/report"
	"github.com/danielhkuo/quickly-stv/store"
	"github.com/danielhkuo/quickly-stv/stv"
)

const programName = "quickly-stv"

var errAborted = errors.New("aborted by user")

// streams is the process I/O, injectable for tests.
type streams struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool // stdin is a terminal
	colorOut    bool // stdout is a terminal
}

func main() {
	// signal.NotifyContext cancels ctx on Ctrl-C so a slow database load stops
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], streams{
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: prompt.IsTerminal(os.Stdin),
		colorOut:    prompt.IsTerminal(os.Stdout),
	})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, s streams) int {
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		cliparse.PrintDefaults(s.errOut)
		return 0
	}
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n\n", err)
		cliparse.PrintDefaults(s.errOut)
		return 2
	}

	runID := audit.NewRunID()
	logger := slog.New(slog.NewTextHandler(s.errOut, &slog.HandlerOptions{Level: cfg.LogLevel})).
		With("run_id", runID)
	slog.SetDefault(logger)

	t := &tabulation{
		cfg:    cfg,
		s:      s,
		log:    logger,
		runID:  runID,
		prompt: prompt.New(s.in, textOut(cfg, s), cfg.AssumeYes, s.interactive),
	}
	if err := t.run(ctx); err != nil {
		if errors.Is(err, errAborted) {
			fmt.Fprintln(textOut(cfg, s), "Exiting...")
			return 1
		}
		logger.Error("tabulation failed", "error", err)
		if cfg.JSON {
			report.WriteError(s.out, errorKind(err), err)
		}
		return 1
	}
	return 0
}

// textOut is where the human transcript goes: stdout, or stderr when
// stdout carries JSON.
func textOut(cfg cliparse.Config, s streams) io.Writer {
	if cfg.JSON {
		return s.errOut
	}
	return s.out
}

func errorKind(err error) string {
	var cfgErr *stv.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return "config"
	case errors.Is(err, offices.ErrUnknownOffice), errors.Is(err, prompt.ErrInvalidNumbers):
		return "usage"
	case errors.Is(err, ballotcsv.ErrCandidateMismatch):
		return "input"
	default:
		return "error"
	}
}

// tabulation carries one run from loading ballots to printing the result.
type tabulation struct {
	cfg     cliparse.Config
	s       streams
	log     *slog.Logger
	runID   string
	prompt  *prompt.Prompter
	printer *report.Printer

	office     models.Office
	seed       uint64
	candidates []string
	ballots    []models.Ballot
	eliminated []int
}

func (t *tabulation) run(ctx context.Context) error {
	table := offices.Default()
	if t.cfg.OfficesFile != "" {
		var err error
		table, err = offices.Load(t.cfg.OfficesFile)
		if err != nil {
			return err
		}
	}

	if t.cfg.ListOffices {
		for _, o := range table.All() {
			fmt.Fprintf(t.s.out, "%s: %d\n", o.Name, o.Seats)
		}
		return nil
	}

	office, err := table.Lookup(t.cfg.Office)
	if err != nil {
		return err
	}
	t.office = office

	if !t.cfg.AssumeYes && !t.s.interactive {
		return fmt.Errorf("standard input is not a terminal: %w", prompt.ErrNoAnswer)
	}

	t.seed = t.cfg.Seed
	if !t.cfg.HasSeed {
		t.seed = stv.RandomSeed()
	}
	t.log = t.log.With("office", office.Name, "seed", t.seed)

	if t.cfg.FromDatabase() {
		err = t.loadPoll(ctx)
	} else {
		err = t.loadCSV()
	}
	if err != nil {
		return err
	}

	if err := t.chooseEliminations(); err != nil {
		return err
	}

	return t.count()
}

func (t *tabulation) newPrinter(candidates []string) {
	colorize := t.s.colorOut && !t.cfg.NoColor && !t.cfg.JSON
	t.printer = report.NewPrinter(textOut(t.cfg, t.s), candidates, colorize)
	t.candidates = candidates
}

func (t *tabulation) loadCSV() error {
	opts := ballotcsv.Options{NoPreference: t.cfg.NoPreference}

	sheet, err := ballotcsv.ReadFile(t.cfg.File, opts)
	if err != nil {
		return err
	}
	t.log.Info("ballots loaded", "file", t.cfg.File, "ballots", len(sheet.Ballots), "empty", sheet.Empty)

	t.newPrinter(sheet.Candidates)
	t.printer.Candidates()
	if ok, err := t.prompt.Confirm("Is this correct?"); err != nil {
		return err
	} else if !ok {
		return errAborted
	}

	if err := t.confirmBallots("ballots", len(sheet.Ballots), sheet.Empty); err != nil {
		return err
	}
	regular := sheet.Ballots

	if t.cfg.ExecVotes == "" {
		t.ballots = regular
		return nil
	}

	exec, err := ballotcsv.ReadFile(t.cfg.ExecVotes, opts)
	if err != nil {
		return err
	}
	if err := ballotcsv.CheckCandidates(sheet.Candidates, exec.Candidates); err != nil {
		return fmt.Errorf("exec ballots: %w", err)
	}
	if err := t.confirmBallots("exec ballots", len(exec.Ballots), exec.Empty); err != nil {
		return err
	}
	return t.mergeSupervotes(regular, exec.Ballots)
}

func (t *tabulation) loadPoll(ctx context.Context) error {
	db, err := store.Open(t.cfg.DatabaseType, t.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	poll, err := store.LoadPoll(ctx, db, t.cfg.PollID)
	if err != nil {
		return err
	}
	t.log.Info("poll loaded",
		"poll", poll.ID,
		"ballots", len(poll.Regular),
		"supervotes", len(poll.Supervotes),
	)

	t.newPrinter(poll.Candidates)
	if poll.Office != t.office.Name {
		t.printer.Warnf("Poll %s is for %s, counting it as %s.", poll.ID, poll.Office, t.office.Name)
	}
	t.printer.Candidates()
	if ok, err := t.prompt.Confirm("Is this correct?"); err != nil {
		return err
	} else if !ok {
		return errAborted
	}

	if err := t.confirmBallots("ballots", len(poll.Regular), countEmpty(poll.Regular)); err != nil {
		return err
	}
	if len(poll.Supervotes) == 0 {
		t.ballots = poll.Regular
		return nil
	}
	if err := t.confirmBallots("exec ballots", len(poll.Supervotes), countEmpty(poll.Supervotes)); err != nil {
		return err
	}
	return t.mergeSupervotes(poll.Regular, poll.Supervotes)
}

func countEmpty(ballots []models.Ballot) int {
	n := 0
	for _, b := range ballots {
		if b.Empty() {
			n++
		}
	}
	return n
}

// confirmBallots reports a pool's size and empty count and asks the
// operator to confirm before going on.
func (t *tabulation) confirmBallots(kind string, total, empty int) error {
	t.printer.BallotSummary(kind, total, empty)
	ok, err := t.prompt.Confirm("Does this seem alright?")
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

func (t *tabulation) mergeSupervotes(regular, supervotes []models.Ballot) error {
	merged, norm, err := stv.NormalizeSupervotes(regular, supervotes)
	if err != nil {
		return err
	}
	t.printer.Normalization(norm)
	t.log.Info("supervotes normalized",
		"regular_mass", norm.RegularMass.String(),
		"supervotes", norm.Supervotes,
		"weight", norm.Weight.String(),
	)
	t.ballots = merged
	return nil
}

func (t *tabulation) chooseEliminations() error {
	n := len(t.candidates)

	if t.cfg.ElimSet {
		elim, err := prompt.ParseCandidateNumbers(t.cfg.Elim, n)
		if err != nil {
			return err
		}
		t.eliminated = elim
	} else {
		yes, err := t.prompt.ConfirmNo("Do any candidates need to be eliminated?")
		if err != nil {
			return err
		}
		if yes {
			answer, err := t.prompt.Ask("Enter the numbers of the candidates to eliminate, separated by commas:")
			if err != nil {
				return err
			}
			elim, err := prompt.ParseCandidateNumbers(answer, n)
			if err != nil {
				return err
			}
			t.eliminated = elim
		}
	}

	if len(t.eliminated) == 0 {
		return nil
	}
	t.printer.Eliminated(t.eliminated)
	ok, err := t.prompt.Confirm("Is this correct?")
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

func (t *tabulation) count() error {
	t.printer.Printf("Counting %s with %d seat(s), seed %d.\n\n", t.office.Name, t.office.Seats, t.seed)

	var pauseErr error
	election, err := stv.NewElection(t.candidates, t.ballots, stv.Config{
		Seats:      t.office.Seats,
		Eliminated: t.eliminated,
		BreakTies:  t.cfg.BreakTies,
		Rand:       stv.NewRand(t.seed),
		Logger:     t.log,
		Observer: func(r stv.Round) {
			t.printer.Round(r)
			// Pause only when another round follows.
			more := r.Eliminated != stv.NoCandidate && len(r.Active)-1 > t.office.Seats
			if t.cfg.Pause && more && pauseErr == nil {
				pauseErr = t.prompt.Pause()
			}
		},
	})
	if err != nil {
		return err
	}

	outcome, err := election.Run()
	if err != nil {
		return err
	}
	if pauseErr != nil {
		t.log.Warn("pause prompt failed", "error", pauseErr)
	}

	t.printer.Outcome(outcome, t.office.Name)

	digest := audit.Digest(t.candidates, t.ballots)
	t.log.Info("count finished",
		"status", report.Status(outcome),
		"rounds", len(outcome.Rounds),
		"digest", digest,
	)

	if t.cfg.JSON {
		r := report.BuildReport(report.Meta{
			RunID:      t.runID,
			Office:     t.office.Name,
			Seats:      t.office.Seats,
			Seed:       t.seed,
			Candidates: t.candidates,
			Preempted:  t.eliminated,
			InputsHash: digest,
		}, outcome)
		if err := report.WriteJSON(t.s.out, r); err != nil {
			return err
		}
	}

	t.printer.Reproducibility(t.invocation(), audit.ShortDigest(digest))
	return nil
}

func (t *tabulation) invocation() report.Invocation {
	inv := report.Invocation{
		Program:     programName,
		Seed:        t.seed,
		Eliminated:  t.eliminated,
		BreakTies:   t.cfg.BreakTies,
		ExecVotes:   t.cfg.ExecVotes,
		OfficesFile: t.cfg.OfficesFile,
		File:        t.cfg.File,
		Office:      t.office.Name,
	}
	if t.cfg.NoPreference != ballotcsv.DefaultNoPreference {
		inv.NoPreference = t.cfg.NoPreference
	}
	if t.cfg.FromDatabase() {
		inv.DatabaseType = t.cfg.DatabaseType
		inv.PollID = t.cfg.PollID
	}
	return inv
}

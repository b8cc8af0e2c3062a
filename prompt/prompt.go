package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	ErrNoAnswer       = errors.New("no answer on standard input (use -y to skip confirmations)")
	ErrInvalidNumbers = errors.New("invalid candidate number")
)

// Prompter asks yes/no questions on a line-oriented input. With AssumeYes
// set, no input is read and the default answer is used.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	assumeYes   bool
	interactive bool
}

// New returns a Prompter. interactive reports whether in is attached to a
// terminal; pauses are skipped otherwise.
func New(in io.Reader, out io.Writer, assumeYes, interactive bool) *Prompter {
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		assumeYes:   assumeYes,
		interactive: interactive,
	}
}

// IsTerminal reports whether f is a terminal, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm asks question and returns true for "y". AssumeYes answers yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	return p.confirm(question, true)
}

// ConfirmNo is Confirm for questions whose unattended answer must be no,
// such as "Do any candidates need to be eliminated?".
func (p *Prompter) ConfirmNo(question string) (bool, error) {
	return p.confirm(question, false)
}

func (p *Prompter) confirm(question string, unattended bool) (bool, error) {
	if p.assumeYes {
		return unattended, nil
	}
	answer, err := p.Ask(question + " [y/n]")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// Ask prints question and returns the trimmed line typed in response.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrNoAnswer
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Pause waits for Enter. It does nothing unless input is a terminal.
func (p *Prompter) Pause() error {
	if !p.interactive {
		return nil
	}
	_, err := p.Ask("Press enter to continue.")
	if errors.Is(err, ErrNoAnswer) {
		return nil
	}
	return err
}

// ParseCandidateNumbers reads a comma or space separated list of 1-indexed
// candidate numbers and returns 0-indexed candidates. Duplicates are
// dropped.
func ParseCandidateNumbers(s string, candidates int) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	seen := make(map[int]bool, len(fields))
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNumbers, f)
		}
		if n < 1 || n > candidates {
			return nil, fmt.Errorf("%w: %d (have %d candidates)", ErrInvalidNumbers, n, candidates)
		}
		if seen[n-1] {
			continue
		}
		seen[n-1] = true
		out = append(out, n-1)
	}
	return out, nil
}

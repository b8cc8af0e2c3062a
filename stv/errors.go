// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSeats      = errors.New("invalid seat count")
	ErrNoSupervotes      = errors.New("no supervote ballots present")
	ErrUnknownCandidate  = errors.New("unknown candidate")
	ErrDuplicateRanking  = errors.New("candidate ranked more than once")
	ErrNoCandidates      = errors.New("no candidates")
	ErrMissingRandSource = errors.New("random source required")
	ErrAlreadyRun        = errors.New("election already run")
)

// ConfigError reports a misconfiguration detected before any round is
// counted. It wraps one of the sentinel errors above.
type ConfigError struct {
	Field  string
	Detail string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v (%s)", e.Field, e.Err, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(field string, err error, format string, args ...any) *ConfigError {
	return &ConfigError{
		Field:  field,
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

package domain

import (
	"errors"
	"fmt"
)

// Machine definition errors, reported once when a definition is compiled.
var (
	ErrDuplicateTransition    = errors.New("duplicate transition")
	ErrUnknownStateReference  = errors.New("unknown state reference")
	ErrUnknownSymbolReference = errors.New("unknown symbol reference")
	ErrEmptyHaltingSet        = errors.New("empty halting set")
	ErrEmptyAlphabet          = errors.New("empty alphabet")
	ErrInvalidBlank           = errors.New("invalid blank symbol")
	ErrInvalidMove            = errors.New("invalid move")
)

// Caller misuse, reported before any step executes.
var (
	ErrForeignSymbol    = errors.New("symbol outside the input alphabet")
	ErrInvalidStepLimit = errors.New("step limit must be positive")
)

// Run outcomes surfaced as errors by result shaping.
var (
	ErrRejected          = errors.New("input rejected")
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// RunError reports a run that did not end in a halting state.
// The result is kept so the final tape can be inspected.
type RunError struct {
	Result *RunResult
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s in state %s after %d steps (tape %q)",
		e.Unwrap(), e.Result.FinalState, e.Result.Steps, e.Result.Output)
}

func (e *RunError) Unwrap() error {
	if e.Result.Outcome == OutcomeLimitExceeded {
		return ErrStepLimitExceeded
	}
	return ErrRejected
}

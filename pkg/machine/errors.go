package machine

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single problem found while compiling a definition.
type ValidationError struct {
	Kind    error  // One of the domain definition sentinels
	Subject string // What the problem is about (a rule, a state, the alphabet)
	Reason  string // Human-readable detail
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Subject)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Subject, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// AggregateError represents every problem found in a definition.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is or wraps an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

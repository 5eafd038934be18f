package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Mask replaces redacted input and output.
const Mask = "***"

type redactionMiddleware struct {
	next     ports.RunStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks the input and final tape of runs
// whose machine name matches any of the patterns, e.g. "^caesar-decrypt-" to never store
// recovered plaintext. Records are masked on the way in; the caller's record is not modified.
func NewRedactionMiddleware(patterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		compiled[i] = re
	}
	return func(next ports.RunStore) ports.RunStore {
		return &redactionMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, record *domain.RunRecord) error {
	if !m.matches(record.Machine) {
		return m.next.Save(ctx, record)
	}
	masked := *record
	masked.Input = Mask
	masked.Result.Output = Mask
	masked.Result.Tape = nil
	return m.next.Save(ctx, &masked)
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

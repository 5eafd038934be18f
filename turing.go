package turing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
)

// DefaultStepLimit is the step limit used when none is configured.
const DefaultStepLimit = runtime.DefaultStepLimit

// Machine is the high-level entry point of the library.
// It binds a compiled spec to the runtime engine and provides a string-oriented API.
type Machine struct {
	spec      *machine.Spec
	runtime   *runtime.Engine
	stepLimit int
	store     ports.RunStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithStepLimit bounds every run (default: DefaultStepLimit).
func WithStepLimit(limit int) Option {
	return func(m *Machine) {
		m.stepLimit = limit
	}
}

// WithStore keeps a record of every run made through Record.
func WithStore(store ports.RunStore) Option {
	return func(m *Machine) {
		m.store = store
	}
}

// New binds spec to a new engine.
func New(spec *machine.Spec, opts ...Option) (*Machine, error) {
	if spec == nil {
		return nil, errors.New("machine spec is required")
	}

	m := &Machine{
		spec:      spec,
		stepLimit: DefaultStepLimit,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.stepLimit < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidStepLimit, m.stepLimit)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if spec.Name() != "" {
		m.logger = m.logger.With("machine", spec.Name())
	}

	m.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithLogger(m.logger),
	)
	return m, nil
}

// Spec returns the compiled spec the machine runs.
func (m *Machine) Spec() *machine.Spec {
	return m.spec
}

// StepLimit returns the configured step limit.
func (m *Machine) StepLimit() int {
	return m.stepLimit
}

// Run executes the machine over input, one symbol per rune.
// Rejection and step exhaustion are reported through RunResult.Outcome, not as errors.
func (m *Machine) Run(ctx context.Context, input string) (*domain.RunResult, error) {
	return m.RunSymbols(ctx, domain.Symbols(input))
}

// RunSymbols executes the machine over an already tokenized input.
func (m *Machine) RunSymbols(ctx context.Context, input []domain.Symbol) (*domain.RunResult, error) {
	return m.runtime.Run(ctx, m.spec, input, m.stepLimit)
}

// Transform runs the machine and shapes the result into its output string.
func (m *Machine) Transform(ctx context.Context, input string) (string, error) {
	res, err := m.Run(ctx, input)
	if err != nil {
		return "", err
	}
	return Output(res)
}

// Record runs the machine and persists the outcome in the configured store.
// Without a store the record is returned but not kept.
func (m *Machine) Record(ctx context.Context, input string) (*domain.RunRecord, error) {
	res, err := m.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	record := &domain.RunRecord{
		ID:        uuid.NewString(),
		Machine:   m.spec.Name(),
		Input:     input,
		Result:    *res,
		CreatedAt: time.Now().UTC(),
	}
	if m.store == nil {
		return record, nil
	}
	if err := m.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	m.logger.Debug("run recorded", "run_id", record.ID)
	return record, nil
}

// Output converts an accepted result into its tape string.
// Other outcomes yield a *domain.RunError carrying the result, so the final tape stays inspectable.
func Output(res *domain.RunResult) (string, error) {
	if res == nil {
		return "", errors.New("nil run result")
	}
	if !res.Accepted() {
		return res.Output, &domain.RunError{Result: res}
	}
	return res.Output, nil
}

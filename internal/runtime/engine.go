package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/tape"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// DefaultStepLimit bounds runs when the caller does not choose a limit.
const DefaultStepLimit = 100000

// Engine is the Turing machine runner. It holds no per-run state:
// a single Engine may execute any number of runs, concurrently.
type Engine struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes spec against input on a fresh tape, head and input both starting at position 0.
//
// The run is accepted as soon as the current state is halting (checked before every step),
// rejected when no rule matches a non-halting (state, symbol) pair, and stopped with
// OutcomeLimitExceeded when another step would exceed limit. Those three outcomes are
// values; errors are returned only for caller misuse, before any step executes.
//
// ctx is forwarded to lifecycle hooks only; the step limit is the sole cancellation bound.
func (e *Engine) Run(ctx context.Context, spec *machine.Spec, input []domain.Symbol, limit int) (*domain.RunResult, error) {
	if spec == nil {
		return nil, errors.New("nil machine spec")
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidStepLimit, limit)
	}
	if err := spec.ValidateInput(input); err != nil {
		return nil, err
	}

	if e.hooks.OnRunStart != nil {
		e.hooks.OnRunStart(ctx, &domain.RunEvent{
			EventBase:   e.event(domain.EventRunStart, spec),
			InputLength: len(input),
			StepLimit:   limit,
		})
	}

	t := tape.New(spec.Blank(), input)
	state := spec.Start()
	steps := 0
	var outcome domain.Outcome

	for {
		if spec.IsHalting(state) {
			outcome = domain.OutcomeAccepted
			break
		}

		rule, ok := spec.Match(state, t.Read())
		if !ok {
			outcome = domain.OutcomeRejected
			break
		}
		if steps >= limit {
			outcome = domain.OutcomeLimitExceeded
			break
		}

		head := t.Head()
		t.Write(rule.Write)
		t.Move(rule.Move)
		state = rule.To
		steps++

		if e.logger.Enabled(ctx, slog.LevelDebug) {
			e.logger.Debug("step", "n", steps, "rule", rule.String(), "head", t.Head())
		}
		if e.hooks.OnStep != nil {
			e.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: e.event(domain.EventStep, spec),
				Step:      steps,
				Rule:      rule,
				Head:      head,
			})
		}
	}

	snapshot := t.Snapshot()
	result := &domain.RunResult{
		Tape:       snapshot,
		Output:     domain.Join(snapshot),
		FinalState: state,
		Steps:      steps,
		Outcome:    outcome,
		Head:       t.Head(),
	}

	e.logger.Debug("run finished",
		"machine", spec.Name(),
		"outcome", result.Outcome,
		"steps", result.Steps,
		"final_state", result.FinalState,
	)

	if e.hooks.OnRunEnd != nil {
		e.hooks.OnRunEnd(ctx, &domain.RunEvent{
			EventBase:   e.event(domain.EventRunEnd, spec),
			InputLength: len(input),
			StepLimit:   limit,
			Result:      result,
		})
	}

	return result, nil
}

func (e *Engine) event(typ domain.EventType, spec *machine.Spec) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      typ,
		Machine:   spec.Name(),
	}
}

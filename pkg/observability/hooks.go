package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Chain combines several hook sets; each callback fans out in argument order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var starts, ends []func(context.Context, *domain.RunEvent)
	var steps []func(context.Context, *domain.StepEvent)
	for _, h := range hooks {
		if h.OnRunStart != nil {
			starts = append(starts, h.OnRunStart)
		}
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnRunEnd != nil {
			ends = append(ends, h.OnRunEnd)
		}
	}

	var out domain.LifecycleHooks
	if len(starts) > 0 {
		out.OnRunStart = func(ctx context.Context, e *domain.RunEvent) {
			for _, fn := range starts {
				fn(ctx, e)
			}
		}
	}
	if len(steps) > 0 {
		out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, fn := range steps {
				fn(ctx, e)
			}
		}
	}
	if len(ends) > 0 {
		out.OnRunEnd = func(ctx context.Context, e *domain.RunEvent) {
			for _, fn := range ends {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LoggingHooks logs run boundaries at Info and every transition at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start",
				"machine", e.Machine,
				"input_length", e.InputLength,
				"step_limit", e.StepLimit,
			)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"machine", e.Machine,
				"step", e.Step,
				"rule", e.Rule.String(),
				"head", e.Head,
			)
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if e.Result == nil {
				return
			}
			logger.InfoContext(ctx, "run_end",
				"machine", e.Machine,
				"outcome", e.Result.Outcome,
				"steps", e.Result.Steps,
				"final_state", e.Result.FinalState,
			)
		},
	}
}

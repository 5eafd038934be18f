package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"text/tabwriter"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// Status summarises a case outcome.
type Status string

const (
	StatusOK    Status = "ok"
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusError Status = "error"
)

// Result is the outcome of one case.
type Result struct {
	Case    Case           `json:"case"`
	Mode    cipher.Mode    `json:"mode"`
	Output  string         `json:"output"`
	Outcome domain.Outcome `json:"outcome,omitempty"`
	Steps   int            `json:"steps"`
	Status  Status         `json:"status"`
	Err     error          `json:"-"`
}

// Summary counts results by status.
type Summary struct {
	Total  int
	Passed int
	Failed int
	Errors int
}

// OK reports whether no case failed or errored.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errors == 0
}

// Summarize counts results by status. Cases without an expectation count as passed.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusFail:
			s.Failed++
		case StatusError:
			s.Errors++
		default:
			s.Passed++
		}
	}
	return s
}

// Runner executes cases through a Cipher.
type Runner struct {
	cipher      *cipher.Cipher
	concurrency int
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConcurrency bounds the number of cases run at once (default GOMAXPROCS).
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithLogger sets the logger used to report failing cases.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner over c.
func NewRunner(c *cipher.Cipher, opts ...RunnerOption) *Runner {
	r := &Runner{
		cipher:      c,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Run executes every case in mode. Results keep the order of cases.
// Per-case failures are recorded in the results; the error is only set when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, mode cipher.Mode, cases []Case) ([]Result, error) {
	results := make([]Result, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.runCase(ctx, mode, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runCase(ctx context.Context, mode cipher.Mode, c Case) Result {
	res := Result{Case: c, Mode: mode}

	run, err := r.cipher.Apply(ctx, mode, c.Shift, c.Message)
	if err != nil {
		res.Status = StatusError
		res.Err = err
		r.logger.Warn("case failed", "line", c.Line, "error", err)
		return res
	}

	res.Output = run.Output
	res.Outcome = run.Outcome
	res.Steps = run.Steps
	switch {
	case !run.Accepted():
		res.Status = StatusError
		res.Err = &domain.RunError{Result: run}
		r.logger.Warn("case not accepted", "line", c.Line, "outcome", run.Outcome)
	case c.Expected == "":
		res.Status = StatusOK
	case c.Expected == run.Output:
		res.Status = StatusPass
	default:
		res.Status = StatusFail
		res.Err = fmt.Errorf("expected %q, got %q", c.Expected, run.Output)
		r.logger.Warn("case mismatch", "line", c.Line, "expected", c.Expected, "got", run.Output)
	}
	return res
}

// WriteReport prints one row per result followed by a summary line.
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKEY\tSHIFT\tINPUT\tOUTPUT\tSTEPS\tSTATUS")
	for i, r := range results {
		status := string(r.Status)
		if r.Err != nil {
			status += ": " + r.Err.Error()
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%d\t%s\n",
			i+1, r.Case.Key, r.Case.Shift, r.Case.Message, r.Output, r.Steps, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := Summarize(results)
	_, err := fmt.Fprintf(w, "\n%d cases: %d passed, %d failed, %d errors\n", s.Total, s.Passed, s.Failed, s.Errors)
	return err
}

// Errors joins every per-case error, or returns nil when all cases succeeded.
func Errors(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("case %d (%s): %w", r.Case.Line, r.Case.Key, r.Err))
		}
	}
	return errors.Join(errs...)
}

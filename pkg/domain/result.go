package domain

import "time"

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeAccepted      Outcome = "accepted"       // A halting state was reached
	OutcomeRejected      Outcome = "rejected"       // No rule matched outside a halting state
	OutcomeLimitExceeded Outcome = "limit_exceeded" // The step limit was reached first
)

// RunResult is the outcome of a single run. It is never mutated after the engine returns it.
type RunResult struct {
	// Tape holds the final tape contents with leading and trailing blanks trimmed.
	Tape []Symbol `json:"-"`

	// Output is Tape rendered as a string.
	Output string `json:"output"`

	FinalState StateID `json:"final_state"`
	Steps      int     `json:"steps"`
	Outcome    Outcome `json:"outcome"`

	// Head is the logical head position when the run stopped (the input starts at 0).
	Head int `json:"head"`
}

// Accepted reports whether the run reached a halting state.
func (r *RunResult) Accepted() bool {
	return r != nil && r.Outcome == OutcomeAccepted
}

// RunRecord is a RunResult kept together with the input that produced it.
type RunRecord struct {
	ID        string    `json:"id"`
	Machine   string    `json:"machine"`
	Input     string    `json:"input"`
	Result    RunResult `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

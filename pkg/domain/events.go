package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventRunEnd   EventType = "run_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine"`
}

// StepEvent describes one applied transition.
type StepEvent struct {
	EventBase
	Step int  `json:"step"`
	Rule Rule `json:"rule"`
	// Head is the head position before the move.
	Head int `json:"head"`
}

// RunEvent marks the start or the end of a run. Result is nil on start.
type RunEvent struct {
	EventBase
	InputLength int        `json:"input_length"`
	StepLimit   int        `json:"step_limit"`
	Result      *RunResult `json:"result,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnRunEnd   func(context.Context, *RunEvent)
}

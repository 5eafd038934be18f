package validator

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Kind classifies a lint finding.
type Kind string

const (
	KindUnreachable Kind = "unreachable"   // No rule path leads from the start state
	KindNoHalt      Kind = "no_halt"       // No halting state is reachable at all
	KindDeadEnd     Kind = "dead_end"      // Non-halting state without rules: every run reaching it is rejected
	KindHaltingExit Kind = "halting_rules" // Rules leaving a halting state never fire
)

// Finding is a structural warning about a compiled machine.
// Unlike compile errors, findings do not stop the machine from running.
type Finding struct {
	Kind  Kind
	State domain.StateID
}

func (f Finding) String() string {
	switch f.Kind {
	case KindUnreachable:
		return fmt.Sprintf("state %q is unreachable from the start state", f.State)
	case KindNoHalt:
		return "no halting state is reachable from the start state"
	case KindDeadEnd:
		return fmt.Sprintf("state %q has no rules and is not halting", f.State)
	case KindHaltingExit:
		return fmt.Sprintf("halting state %q has rules that never fire", f.State)
	default:
		return string(f.Kind)
	}
}

// Lint crawls the transition graph from the start state and reports structural problems.
func Lint(spec *machine.Spec) []Finding {
	edges := make(map[domain.StateID][]domain.StateID)
	for _, r := range spec.Table().Rules() {
		edges[r.From] = append(edges[r.From], r.To)
	}

	visited := map[domain.StateID]bool{}
	queue := []domain.StateID{spec.Start()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		// Runs stop on halting states, so their rules lead nowhere.
		if spec.IsHalting(current) {
			continue
		}
		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	var findings []Finding
	haltReachable := false
	for _, st := range spec.States() {
		switch {
		case !visited[st]:
			findings = append(findings, Finding{Kind: KindUnreachable, State: st})
		case spec.IsHalting(st):
			haltReachable = true
		}
		if spec.IsHalting(st) && len(edges[st]) > 0 {
			findings = append(findings, Finding{Kind: KindHaltingExit, State: st})
		}
		if !spec.IsHalting(st) && len(edges[st]) == 0 && visited[st] {
			findings = append(findings, Finding{Kind: KindDeadEnd, State: st})
		}
	}
	if !haltReachable {
		findings = append(findings, Finding{Kind: KindNoHalt})
	}

	slices.SortStableFunc(findings, func(a, b Finding) int {
		if a.Kind != b.Kind {
			if a.Kind < b.Kind {
				return -1
			}
			return 1
		}
		if a.State < b.State {
			return -1
		}
		if a.State > b.State {
			return 1
		}
		return 0
	})
	return findings
}

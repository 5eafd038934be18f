package graph

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.StateID
	CurrentState  domain.StateID
}

// MaxLabels is the number of rule labels drawn on one edge before it is summarised.
const MaxLabels = 6

type edge struct {
	from, to domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart of the state diagram of spec.
// It applies semantic styling:
// - Start: ((Circle))
// - Halting: (((Double circle)))
// - Default: [Rectangle]
// Each edge is labelled with the read/write,move rules it carries.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(spec *machine.Spec, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, st := range spec.States() {
		id := sanitizeMermaidID(string(st))
		opener, closer := "[", "]"
		switch {
		case spec.IsHalting(st):
			opener, closer = "(((", ")))"
		case st == spec.Start():
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escape(string(st)), closer)
	}

	labels := make(map[edge][]string)
	var order []edge
	for _, r := range spec.Table().Rules() {
		e := edge{from: r.From, to: r.To}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%s/%s,%s", show(r.Read), show(r.Write), r.Move))
	}
	for _, e := range order {
		ls := labels[e]
		label := strings.Join(ls, "<br/>")
		if len(ls) > MaxLabels {
			label = strings.Join(ls[:MaxLabels-1], "<br/>") + fmt.Sprintf("<br/>... %d more", len(ls)-MaxLabels+1)
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(string(e.from)), escape(label), sanitizeMermaidID(string(e.to)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, st := range overlay.VisitedStates {
			id := sanitizeMermaidID(string(st))
			if id != "" && !seen[id] {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}
		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(string(overlay.CurrentState)))
		}
	}

	return sb.String()
}

// Trace collects the states a run passes through, for use as an overlay.
// It is not safe for concurrent runs.
type Trace struct {
	overlay GraphOverlay
}

// Hooks records every state entered.
func (t *Trace) Hooks(start domain.StateID) domain.LifecycleHooks {
	t.overlay = GraphOverlay{VisitedStates: []domain.StateID{start}, CurrentState: start}
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			if !slices.Contains(t.overlay.VisitedStates, e.Rule.To) {
				t.overlay.VisitedStates = append(t.overlay.VisitedStates, e.Rule.To)
			}
			t.overlay.CurrentState = e.Rule.To
		},
	}
}

// Overlay returns the collected overlay.
func (t *Trace) Overlay() *GraphOverlay {
	o := t.overlay
	return &o
}

func show(s domain.Symbol) string {
	if s == ' ' {
		return "␣"
	}
	return s.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}

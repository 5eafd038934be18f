package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Describe renders spec as a markdown document: its sets, then its transition table.
func Describe(spec *machine.Spec) string {
	var sb strings.Builder

	name := spec.Name()
	if name == "" {
		name = "unnamed machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)

	fmt.Fprintf(&sb, "- **States:** %s\n", joinStates(spec.States()))
	fmt.Fprintf(&sb, "- **Start state:** `%s`\n", spec.Start())
	fmt.Fprintf(&sb, "- **Halting states:** %s\n", joinStates(spec.HaltingStates()))
	fmt.Fprintf(&sb, "- **Input alphabet:** %s\n", joinSymbols(spec.Alphabet()))
	fmt.Fprintf(&sb, "- **Blank:** %s\n", cell(spec.Blank()))
	fmt.Fprintf(&sb, "- **Transitions:** %d\n\n", spec.Table().Len())

	sb.WriteString("| State | Read | Write | Move | Next |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range spec.Table().Rules() {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | `%s` |\n", r.From, cell(r.Read), cell(r.Write), r.Move, r.To)
	}
	return sb.String()
}

func joinStates(states []domain.StateID) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = "`" + string(s) + "`"
	}
	return strings.Join(parts, ", ")
}

func joinSymbols(symbols []domain.Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = cell(s)
	}
	return strings.Join(parts, " ")
}

func cell(s domain.Symbol) string {
	switch s {
	case ' ':
		return "`␣`"
	case '|':
		return "`\\|`"
	case '`':
		return "``` ` ```"
	}
	return "`" + s.String() + "`"
}

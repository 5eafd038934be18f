package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Builder manages the machine construction.
type Builder struct {
	name     string
	alphabet []domain.Symbol
	blank    domain.Symbol
	start    domain.StateID
	order    []domain.StateID
	states   map[domain.StateID]*StateBuilder
}

// New creates a new machine builder. The blank defaults to '_'.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		blank:  '_',
		states: make(map[domain.StateID]*StateBuilder),
	}
}

// Alphabet sets the input alphabet, one symbol per rune.
func (b *Builder) Alphabet(symbols string) *Builder {
	b.alphabet = domain.Symbols(symbols)
	return b
}

// Blank sets the blank symbol.
func (b *Builder) Blank(blank rune) *Builder {
	b.blank = domain.Symbol(blank)
	return b
}

// State adds a state to the machine.
// If the state already exists, it returns the existing builder.
// The first state added is the start state unless another one calls Start.
func (b *Builder) State(id string) *StateBuilder {
	sid := domain.StateID(id)
	if sb, ok := b.states[sid]; ok {
		return sb
	}
	sb := &StateBuilder{id: sid, builder: b}
	b.states[sid] = sb
	b.order = append(b.order, sid)
	return sb
}

// Definition assembles the unvalidated definition.
func (b *Builder) Definition() machine.Definition {
	def := machine.Definition{
		Name:     b.name,
		States:   slices.Clone(b.order),
		Alphabet: slices.Clone(b.alphabet),
		Blank:    b.blank,
		Start:    b.start,
	}
	if def.Start == "" && len(b.order) > 0 {
		def.Start = b.order[0]
	}

	// Only written symbols extend the tape alphabet. A read of anything else
	// is left for Compile to reject.
	known := func(s domain.Symbol) bool {
		return s == b.blank || slices.Contains(def.Alphabet, s) || slices.Contains(def.TapeSymbols, s)
	}
	for _, id := range b.order {
		sb := b.states[id]
		if sb.halting {
			def.Halting = append(def.Halting, id)
		}
		for _, r := range sb.rules {
			if !known(r.Write) {
				def.TapeSymbols = append(def.TapeSymbols, r.Write)
			}
			def.Rules = append(def.Rules, r)
		}
	}
	return def
}

// Build compiles the machine.
func (b *Builder) Build() (*machine.Spec, error) {
	spec, err := machine.Compile(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build machine %s: %w", b.name, err)
	}
	return spec, nil
}

// BuildLoader compiles the machine into a memory loader serving it by name.
func (b *Builder) BuildLoader() (*memory.Loader, error) {
	spec, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewFromSpecs(spec)
}

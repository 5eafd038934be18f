package dsl

import "github.com/aretw0/turing/pkg/domain"

// StateBuilder provides a fluent API for configuring a state and its outgoing rules.
type StateBuilder struct {
	id      domain.StateID
	halting bool
	rules   []domain.Rule
	builder *Builder
}

// Start makes this the start state.
func (s *StateBuilder) Start() *StateBuilder {
	s.builder.start = s.id
	return s
}

// Halting marks the state as halting: reaching it accepts the input.
func (s *StateBuilder) Halting() *StateBuilder {
	s.halting = true
	return s
}

// On adds the rule (state, read) -> (to, write, move).
func (s *StateBuilder) On(read, write rune, move domain.Move, to string) *StateBuilder {
	s.rules = append(s.rules, domain.Rule{
		From:  s.id,
		Read:  domain.Symbol(read),
		To:    domain.StateID(to),
		Write: domain.Symbol(write),
		Move:  move,
	})
	return s
}

// Keep adds a rule that leaves the symbol under the head unchanged.
func (s *StateBuilder) Keep(read rune, move domain.Move, to string) *StateBuilder {
	return s.On(read, read, move, to)
}

// State switches to another state of the same machine.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}

package machine

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
)

// Spec is a validated machine. It is immutable and safe for concurrent use.
type Spec struct {
	name    string
	blank   domain.Symbol
	start   domain.StateID
	states  map[domain.StateID]struct{}
	input   map[domain.Symbol]struct{}
	tape    map[domain.Symbol]struct{}
	halting map[domain.StateID]struct{}
	table   Table
}

// Compile validates def and builds its transition table.
// All problems are reported together in an *AggregateError.
func Compile(def Definition) (*Spec, error) {
	s := &Spec{
		name:    def.Name,
		blank:   def.Blank,
		start:   def.Start,
		states:  toSet(def.States),
		input:   toSet(def.Alphabet),
		halting: toSet(def.Halting),
	}

	var errs []error
	report := func(kind error, subject, reason string) {
		errs = append(errs, &ValidationError{Kind: kind, Subject: subject, Reason: reason})
	}

	if len(s.input) == 0 {
		report(domain.ErrEmptyAlphabet, "alphabet", "at least one input symbol is required")
	}
	if _, clash := s.input[def.Blank]; clash {
		report(domain.ErrInvalidBlank, fmt.Sprintf("blank %q", rune(def.Blank)), "must not belong to the input alphabet")
	}

	s.tape = make(map[domain.Symbol]struct{}, len(s.input)+len(def.TapeSymbols)+1)
	for sym := range s.input {
		s.tape[sym] = struct{}{}
	}
	for _, sym := range def.TapeSymbols {
		s.tape[sym] = struct{}{}
	}
	s.tape[def.Blank] = struct{}{}

	if _, ok := s.states[def.Start]; !ok {
		report(domain.ErrUnknownStateReference, fmt.Sprintf("start state %q", def.Start), "not declared")
	}
	if len(s.halting) == 0 {
		report(domain.ErrEmptyHaltingSet, "accepting states", "a machine without halting states can never stop")
	}
	for _, h := range def.Halting {
		if _, ok := s.states[h]; !ok {
			report(domain.ErrUnknownStateReference, fmt.Sprintf("halting state %q", h), "not declared")
		}
	}

	for _, r := range def.Rules {
		for _, st := range []domain.StateID{r.From, r.To} {
			if _, ok := s.states[st]; !ok {
				report(domain.ErrUnknownStateReference, r.String(), fmt.Sprintf("state %q not declared", st))
			}
		}
		for _, sym := range []domain.Symbol{r.Read, r.Write} {
			if _, ok := s.tape[sym]; !ok {
				report(domain.ErrUnknownSymbolReference, r.String(), fmt.Sprintf("symbol %q not in alphabet", rune(sym)))
			}
		}
		if !r.Move.Valid() {
			report(domain.ErrInvalidMove, r.String(), "move must be L, R or S")
		}
	}

	table, dupErrs := newTable(def.Rules)
	errs = append(errs, dupErrs...)
	s.table = table

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return s, nil
}

// MustCompile is like Compile but panics on error. Intended for built-in machines.
func MustCompile(def Definition) *Spec {
	s, err := Compile(def)
	if err != nil {
		panic(fmt.Sprintf("machine %q: %v", def.Name, err))
	}
	return s
}

// Name returns the machine name (may be empty).
func (s *Spec) Name() string {
	return s.name
}

func (s *Spec) Blank() domain.Symbol {
	return s.blank
}

func (s *Spec) Start() domain.StateID {
	return s.start
}

func (s *Spec) Table() Table {
	return s.table
}

// IsHalting reports whether state is a declared halting state.
func (s *Spec) IsHalting(state domain.StateID) bool {
	_, ok := s.halting[state]
	return ok
}

// Match looks up the rule for (state, symbol).
func (s *Spec) Match(state domain.StateID, symbol domain.Symbol) (domain.Rule, bool) {
	return s.table.Match(state, symbol)
}

// States returns the declared states, sorted.
func (s *Spec) States() []domain.StateID {
	return sortedKeys(s.states)
}

// HaltingStates returns the declared halting states, sorted.
func (s *Spec) HaltingStates() []domain.StateID {
	return sortedKeys(s.halting)
}

// Alphabet returns the input alphabet, sorted.
func (s *Spec) Alphabet() []domain.Symbol {
	return sortedKeys(s.input)
}

// ValidateInput fails fast on symbols outside the input alphabet, blank included.
func (s *Spec) ValidateInput(input []domain.Symbol) error {
	for i, sym := range input {
		if _, ok := s.input[sym]; !ok {
			return fmt.Errorf("%w: %q at position %d", domain.ErrForeignSymbol, rune(sym), i)
		}
	}
	return nil
}

// Definition rebuilds a Definition equivalent to the spec, with every list sorted.
func (s *Spec) Definition() Definition {
	var extra []domain.Symbol
	for _, sym := range sortedKeys(s.tape) {
		if _, isInput := s.input[sym]; !isInput && sym != s.blank {
			extra = append(extra, sym)
		}
	}
	return Definition{
		Name:        s.name,
		States:      s.States(),
		Alphabet:    s.Alphabet(),
		TapeSymbols: extra,
		Blank:       s.blank,
		Start:       s.start,
		Halting:     s.HaltingStates(),
		Rules:       s.table.Rules(),
	}
}

func toSet[T comparable](items []T) map[T]struct{} {
	set := make(map[T]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func sortedKeys[T ~string | ~int32](set map[T]struct{}) []T {
	out := make([]T, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

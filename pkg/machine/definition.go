package machine

import "github.com/aretw0/turing/pkg/domain"

// Definition is an unvalidated machine description, as produced by a loader.
type Definition struct {
	Name   string
	States []domain.StateID

	// Alphabet is the input alphabet. Every input symbol must belong to it.
	Alphabet []domain.Symbol

	// TapeSymbols are extra working symbols rules may read or write but inputs may not contain.
	TapeSymbols []domain.Symbol

	Blank   domain.Symbol
	Start   domain.StateID
	Halting []domain.StateID
	Rules   []domain.Rule
}

package domain

import "strings"

// Symbol is the content of a single tape cell.
type Symbol rune

func (s Symbol) String() string {
	return string(rune(s))
}

// Symbols splits a string into tape symbols, one per rune.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}

// Join renders a sequence of symbols back into a string.
func Join(symbols []Symbol) string {
	var sb strings.Builder
	sb.Grow(len(symbols))
	for _, s := range symbols {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

// StateID identifies a machine state.
type StateID string

func (id StateID) String() string {
	return string(id)
}

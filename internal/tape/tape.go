// Package tape implements the two-way unbounded tape of a single run.
package tape

import "github.com/aretw0/turing/pkg/domain"

// Tape is a growable window over an unbounded sequence of cells.
// Logical positions may be negative; offset is the logical position of cells[0].
// The head always refers to a materialized cell.
type Tape struct {
	cells  []domain.Symbol
	offset int
	head   int
	blank  domain.Symbol
}

// New creates a tape holding input from position 0 with the head on position 0.
// An empty input yields a single blank cell.
func New(blank domain.Symbol, input []domain.Symbol) *Tape {
	cells := make([]domain.Symbol, len(input), len(input)+1)
	copy(cells, input)
	if len(cells) == 0 {
		cells = append(cells, blank)
	}
	return &Tape{cells: cells, blank: blank}
}

// Read returns the symbol under the head.
func (t *Tape) Read() domain.Symbol {
	return t.cells[t.head-t.offset]
}

// Write overwrites the symbol under the head.
func (t *Tape) Write(s domain.Symbol) {
	t.cells[t.head-t.offset] = s
}

// Move shifts the head one cell, materializing a blank cell when it walks off either edge.
func (t *Tape) Move(m domain.Move) {
	t.head += m.Delta()
	switch idx := t.head - t.offset; {
	case idx < 0:
		t.growLeft()
	case idx >= len(t.cells):
		t.cells = append(t.cells, t.blank)
	}
}

// growLeft doubles the window to the left so repeated left moves stay amortized O(1).
func (t *Tape) growLeft() {
	n := len(t.cells)
	grown := make([]domain.Symbol, n+n, cap(t.cells)+n)
	for i := 0; i < n; i++ {
		grown[i] = t.blank
	}
	copy(grown[n:], t.cells)
	t.cells = grown
	t.offset -= n
}

// Head returns the logical head position.
func (t *Tape) Head() int {
	return t.head
}

// Len returns the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Snapshot returns the tape contents left to right with leading and trailing blanks removed.
// Blanks between written cells are kept.
func (t *Tape) Snapshot() []domain.Symbol {
	start, end := 0, len(t.cells)
	for start < end && t.cells[start] == t.blank {
		start++
	}
	for end > start && t.cells[end-1] == t.blank {
		end--
	}
	out := make([]domain.Symbol, end-start)
	copy(out, t.cells[start:end])
	return out
}

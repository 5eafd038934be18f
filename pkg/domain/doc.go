/*
Package domain contains the core domain models of the Turing engine.

It defines the value types the machine is built from: tape symbols, state identifiers,
head moves, transition rules and the outcome of a run. The package is kept pure and free
of I/O or persistence so every other layer can depend on it.

# Key Entities

  - Symbol: a single tape cell value (one rune).
  - StateID: an opaque, comparable state identifier.
  - Rule: maps (state, symbol under head) to (next state, symbol to write, head move).
  - RunResult: the trimmed tape, terminal state, step count and Outcome of one run.
  - RunRecord: a RunResult stored together with its input for later inspection.
*/
package domain

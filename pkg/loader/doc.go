/*
Package loader reads machine documents and compiles them into validated specs.

A document is YAML (JSON is accepted as well, being a subset):

	name: caesar-encrypt-3
	states: [scan, done]
	alphabet: [A, B, C]
	blank: _
	start_state: scan
	accepting_states: [done]
	transitions:
	  - {from_state: scan, read_symbol: A, to_state: scan, write_symbol: D, move: R}

Every symbol is a single character. Moves are L, R or S (stay).
*/
package loader

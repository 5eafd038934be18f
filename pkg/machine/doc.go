// Package machine compiles machine definitions into validated, immutable specs.
//
// A Definition is the raw bundle produced by a loader: declared states, input alphabet,
// blank symbol, start state, halting states and rules. Compile checks it once and returns
// a *Spec whose transition table is keyed by (state, symbol):
//
//	spec, err := machine.Compile(def)
//	if errors.Is(err, domain.ErrDuplicateTransition) {
//	    // two rules share a (state, symbol) key
//	}
//
// A Spec is never mutated after Compile and may be shared by any number of concurrent runs.
package machine

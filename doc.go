/*
Package turing is a deterministic single-tape Turing machine engine.

A machine is described by a transition table over a finite alphabet with a blank symbol,
a start state and a set of halting states. The engine runs it over a fresh two-way tape,
one write and head move per step, until a halting state is reached, no rule applies, or
a step limit is hit. The bundled cipher package encodes a Caesar shift purely as such a
transition table.

# Usage

	spec, err := loader.LoadFile("caesar-encrypt-3.yaml")
	if err != nil {
		log.Fatal(err)
	}

	m, err := turing.New(spec, turing.WithStepLimit(10000))
	if err != nil {
		log.Fatal(err)
	}

	res, err := m.Run(context.Background(), "HELLO")
	if err != nil {
		log.Fatal(err) // caller misuse: a symbol outside the alphabet
	}

	out, err := turing.Output(res)
	if err != nil {
		log.Printf("not accepted: %v", err) // tape kept in the error for diagnosis
	}
	fmt.Println(out) // KHOOR

A Machine (and the spec it wraps) is immutable and safe for concurrent runs.
*/
package turing

/*
Package dsl provides a fluent Go API for building Turing machines without YAML or JSON documents.

Example usage:

	b := dsl.New("bit-flipper").Alphabet("01").Blank('_')

	b.State("flip").Start().
		On('0', '1', domain.Right, "flip").
		On('1', '0', domain.Right, "flip").
		Keep('_', domain.Stay, "done")

	b.State("done").Halting()

	spec, err := b.Build()

Symbols written by rules that are neither in the alphabet nor the blank become working
tape symbols automatically.
*/
package dsl

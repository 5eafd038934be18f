// Package cipher expresses the Caesar cipher as Turing machine transition tables.
//
// The shift is never computed while a machine runs: EncryptDefinition and DecryptDefinition
// enumerate one rule per letter mapping it to its shifted letter, and the engine only reads,
// writes and moves right until it meets the blank.
package cipher

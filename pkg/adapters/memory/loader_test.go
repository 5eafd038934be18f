package memory_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identityDoc = `
name: identity
states: [q0, halt]
alphabet: [a, b]
blank: _
start_state: q0
accepting_states: [halt]
transitions:
  - {from_state: q0, read_symbol: a, to_state: q0, write_symbol: a, move: R}
  - {from_state: q0, read_symbol: b, to_state: q0, write_symbol: b, move: R}
  - {from_state: q0, read_symbol: _, to_state: halt, write_symbol: _, move: S}
`

func TestLoader_GetMachine(t *testing.T) {
	l, err := memory.NewLoader(map[string]string{"identity": identityDoc})
	require.NoError(t, err)

	spec, err := l.GetMachine("identity")
	require.NoError(t, err)
	assert.Equal(t, 3, spec.Table().Len())

	_, err = l.GetMachine("ghost")
	assert.ErrorIs(t, err, ports.ErrMachineNotFound)

	names, err := l.ListMachines()
	require.NoError(t, err)
	assert.Equal(t, []string{"identity"}, names)
}

func TestLoader_RejectsInvalidDocument(t *testing.T) {
	_, err := memory.NewLoader(map[string]string{"broken": "name: broken\nstates: [q0]\nalphabet: [a]\nblank: _\nstart_state: q0\n"})
	assert.ErrorIs(t, err, domain.ErrEmptyHaltingSet)
}

func TestNewFromSpecs(t *testing.T) {
	spec := machine.MustCompile(machine.Definition{
		Name:     "tiny",
		States:   []domain.StateID{"h"},
		Alphabet: domain.Symbols("a"),
		Blank:    '_',
		Start:    "h",
		Halting:  []domain.StateID{"h"},
	})

	l, err := memory.NewFromSpecs(spec)
	require.NoError(t, err)
	got, err := l.GetMachine("tiny")
	require.NoError(t, err)
	assert.Same(t, spec, got)

	unnamed := machine.MustCompile(machine.Definition{
		States:   []domain.StateID{"h"},
		Alphabet: domain.Symbols("a"),
		Blank:    '_',
		Start:    "h",
		Halting:  []domain.StateID{"h"},
	})
	_, err = memory.NewFromSpecs(unnamed)
	assert.Error(t, err)
}

package machine_test

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flipDefinition swaps 0 and 1 moving right, halting on blank.
func flipDefinition() machine.Definition {
	return machine.Definition{
		Name:     "flip",
		States:   []domain.StateID{"q0", "halt"},
		Alphabet: domain.Symbols("01"),
		Blank:    '_',
		Start:    "q0",
		Halting:  []domain.StateID{"halt"},
		Rules: []domain.Rule{
			{From: "q0", Read: '0', To: "q0", Write: '1', Move: domain.Right},
			{From: "q0", Read: '1', To: "q0", Write: '0', Move: domain.Right},
			{From: "q0", Read: '_', To: "halt", Write: '_', Move: domain.Stay},
		},
	}
}

func TestCompile_Valid(t *testing.T) {
	spec, err := machine.Compile(flipDefinition())
	require.NoError(t, err)

	assert.Equal(t, "flip", spec.Name())
	assert.Equal(t, domain.StateID("q0"), spec.Start())
	assert.True(t, spec.IsHalting("halt"))
	assert.False(t, spec.IsHalting("q0"))
	assert.Equal(t, 3, spec.Table().Len())

	rule, ok := spec.Match("q0", '1')
	require.True(t, ok)
	assert.Equal(t, domain.Symbol('0'), rule.Write)

	_, ok = spec.Match("halt", '1')
	assert.False(t, ok, "missing rule is not an error")
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*machine.Definition)
		want   error
	}{
		{
			name: "duplicate transition",
			mutate: func(d *machine.Definition) {
				d.Rules = append(d.Rules, domain.Rule{From: "q0", Read: '0', To: "halt", Write: '0', Move: domain.Stay})
			},
			want: domain.ErrDuplicateTransition,
		},
		{
			name:   "empty halting set",
			mutate: func(d *machine.Definition) { d.Halting = nil },
			want:   domain.ErrEmptyHaltingSet,
		},
		{
			name:   "unknown start state",
			mutate: func(d *machine.Definition) { d.Start = "nowhere" },
			want:   domain.ErrUnknownStateReference,
		},
		{
			name: "rule targets unknown state",
			mutate: func(d *machine.Definition) {
				d.Rules[0].To = "q9"
			},
			want: domain.ErrUnknownStateReference,
		},
		{
			name:   "unknown halting state",
			mutate: func(d *machine.Definition) { d.Halting = append(d.Halting, "stop") },
			want:   domain.ErrUnknownStateReference,
		},
		{
			name: "rule writes unknown symbol",
			mutate: func(d *machine.Definition) {
				d.Rules[1].Write = '2'
			},
			want: domain.ErrUnknownSymbolReference,
		},
		{
			name: "rule with out of range move",
			mutate: func(d *machine.Definition) {
				d.Rules[0].Move = domain.Move(7)
			},
			want: domain.ErrInvalidMove,
		},
		{
			name:   "empty alphabet",
			mutate: func(d *machine.Definition) { d.Alphabet = nil },
			want:   domain.ErrEmptyAlphabet,
		},
		{
			name:   "blank inside alphabet",
			mutate: func(d *machine.Definition) { d.Blank = '0' },
			want:   domain.ErrInvalidBlank,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := flipDefinition()
			tt.mutate(&def)

			spec, err := machine.Compile(def)
			assert.Nil(t, spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var verr *machine.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestCompile_DuplicateIsNotOverwritten(t *testing.T) {
	def := flipDefinition()
	def.Rules = append(def.Rules, def.Rules[0])

	_, err := machine.Compile(def)
	errs := machine.ValidationErrors(err)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrDuplicateTransition)
}

func TestCompile_ReportsEveryProblem(t *testing.T) {
	def := flipDefinition()
	def.Halting = nil
	def.Start = "nowhere"

	_, err := machine.Compile(def)
	assert.ErrorIs(t, err, domain.ErrEmptyHaltingSet)
	assert.ErrorIs(t, err, domain.ErrUnknownStateReference)
	assert.Len(t, machine.ValidationErrors(err), 2)
	assert.Contains(t, err.Error(), "2 validation errors")
}

func TestCompile_TapeSymbols(t *testing.T) {
	def := flipDefinition()
	def.TapeSymbols = []domain.Symbol{'*'}
	def.Rules[0].Write = '*'

	spec, err := machine.Compile(def)
	require.NoError(t, err)

	assert.ErrorIs(t, spec.ValidateInput(domain.Symbols("0*")), domain.ErrForeignSymbol)
	assert.Equal(t, []domain.Symbol{'*'}, spec.Definition().TapeSymbols)
}

func TestSpec_ValidateInput(t *testing.T) {
	spec := machine.MustCompile(flipDefinition())

	assert.NoError(t, spec.ValidateInput(domain.Symbols("0110")))
	assert.NoError(t, spec.ValidateInput(nil))

	err := spec.ValidateInput(domain.Symbols("01x"))
	assert.ErrorIs(t, err, domain.ErrForeignSymbol)
	assert.Contains(t, err.Error(), "position 2")

	assert.ErrorIs(t, spec.ValidateInput(domain.Symbols("0_")), domain.ErrForeignSymbol, "blank is not an input symbol")
}

func TestSpec_DefinitionRoundTrip(t *testing.T) {
	spec := machine.MustCompile(flipDefinition())

	again, err := machine.Compile(spec.Definition())
	require.NoError(t, err)
	assert.Equal(t, spec.Table().Rules(), again.Table().Rules())
	assert.Equal(t, []domain.StateID{"halt", "q0"}, again.States())
	assert.Equal(t, domain.Symbols("01"), again.Alphabet())
}

func TestMustCompile_Panics(t *testing.T) {
	def := flipDefinition()
	def.Halting = nil
	assert.Panics(t, func() { machine.MustCompile(def) })
}

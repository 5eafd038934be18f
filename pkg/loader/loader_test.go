package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_BinaryIncrement(t *testing.T) {
	spec, err := loader.LoadFile("testdata/binary-increment.yaml")
	require.NoError(t, err)
	assert.Equal(t, "binary-increment", spec.Name())
	assert.Equal(t, domain.Symbols("01"), spec.Alphabet())

	engine := runtime.NewEngine()
	for in, want := range map[string]string{"1011": "1100", "111": "1000", "0": "1"} {
		res, err := engine.Run(context.Background(), spec, domain.Symbols(in), 100)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAccepted, res.Outcome)
		assert.Equal(t, want, res.Output, "increment %s", in)
	}
}

func TestLoadFile_NameFromFile(t *testing.T) {
	spec, err := loader.LoadFile("testdata/unnamed.json")
	require.NoError(t, err)
	assert.Equal(t, "unnamed", spec.Name())
}

func TestLoadFile_ValidationErrors(t *testing.T) {
	_, err := loader.LoadFile("testdata/duplicate.yaml")
	assert.ErrorIs(t, err, domain.ErrDuplicateTransition)

	_, err = loader.LoadFile("testdata/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "multi-character symbol",
			doc:  "states: [q]\nalphabet: [ab]\nblank: _\nstart_state: q\naccepting_states: [q]\n",
			want: loader.ErrInvalidSymbol,
		},
		{
			name: "missing blank",
			doc:  "states: [q]\nalphabet: [a]\nstart_state: q\naccepting_states: [q]\n",
			want: loader.ErrInvalidSymbol,
		},
		{
			name: "bad move",
			doc: "states: [q]\nalphabet: [a]\nblank: _\nstart_state: q\naccepting_states: [q]\n" +
				"transitions:\n  - {from_state: q, read_symbol: a, to_state: q, write_symbol: a, move: UP}\n",
			want: domain.ErrInvalidMove,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := loader.Parse([]byte("states: [q]\nstart: q\n"))
	assert.ErrorContains(t, err, "invalid machine document", "unknown keys are rejected")

	_, err = loader.Parse([]byte(""))
	assert.Error(t, err)

	_, err = loader.Parse([]byte("states: [q"))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestMarshal_RoundTrip(t *testing.T) {
	spec, err := loader.LoadFile("testdata/binary-increment.yaml")
	require.NoError(t, err)

	out, err := loader.Marshal(spec.Definition())
	require.NoError(t, err)

	again, err := loader.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, spec.Table().Rules(), again.Table().Rules())
	assert.Equal(t, spec.HaltingStates(), again.HaltingStates())
	assert.Equal(t, spec.Blank(), again.Blank())
}

func TestMarshal_QuotesSpace(t *testing.T) {
	doc := &loader.Document{
		States:          []string{"q"},
		Alphabet:        []string{"A", " "},
		Blank:           "_",
		StartState:      "q",
		AcceptingStates: []string{"q"},
	}
	def, err := doc.Definition()
	require.NoError(t, err)

	out, err := loader.Marshal(def)
	require.NoError(t, err)

	spec, err := loader.Parse(out)
	require.NoError(t, err)
	assert.Contains(t, spec.Alphabet(), domain.Symbol(' '))
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile("testdata/binary-increment.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inc.yaml"), data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	l, err := loader.NewDirLoader(dir)
	require.NoError(t, err)

	names, err := l.ListMachines()
	require.NoError(t, err)
	assert.Equal(t, []string{"inc"}, names)

	spec, err := l.GetMachine("inc")
	require.NoError(t, err)
	cached, err := l.GetMachine("inc")
	require.NoError(t, err)
	assert.Same(t, spec, cached)

	_, err = l.GetMachine("ghost")
	assert.ErrorIs(t, err, ports.ErrMachineNotFound)
	_, err = l.GetMachine("../inc")
	assert.ErrorIs(t, err, ports.ErrMachineNotFound)

	_, err = loader.NewDirLoader(filepath.Join(dir, "inc.yaml"))
	assert.Error(t, err)
}

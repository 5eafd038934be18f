package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/batch"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs rootCmd with args, resetting the flag state left by earlier runs.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(cli.EnvRedisAddr, "")
	t.Setenv(cli.EnvLogLevel, "")

	cfg = cli.Config{}
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			// Set("[]") on a slice flag appends the literal "[]"; replace instead.
			_ = sv.Replace(nil)
			f.Changed = false
			return
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "turing version "))
}

func TestEncryptDecrypt(t *testing.T) {
	out, err := execute(t, "", "encrypt", "3", "HELLO", "WORLD")
	require.NoError(t, err)
	assert.Equal(t, "KHOOR ZRUOG\n", out)

	out, err = execute(t, "", "decrypt", "C", "--upper", "khoor zruog")
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD\n", out)
}

func TestEncrypt_RejectsForeignSymbols(t *testing.T) {
	_, err := execute(t, "", "encrypt", "3", "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForeignSymbol)
}

func TestEncrypt_InvalidKey(t *testing.T) {
	_, err := execute(t, "", "encrypt", "3a", "HELLO")
	require.Error(t, err)
}

func TestGenValidateRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caesar.yaml")

	_, err := execute(t, "", "gen", "3", "--mode", "decrypt", "-o", path)
	require.NoError(t, err)

	out, err := execute(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "caesar-decrypt-3")
	assert.Contains(t, out, "28 transitions")

	out, err = execute(t, "", "--spec", path, "run", "--json", "KHOOR")
	require.NoError(t, err)

	var record domain.RunRecord
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "caesar-decrypt-3", record.Machine)
	assert.Equal(t, "HELLO", record.Result.Output)
	assert.Equal(t, domain.OutcomeAccepted, record.Result.Outcome)
	assert.Equal(t, 6, record.Result.Steps)
	assert.NotEmpty(t, record.ID)
}

func TestValidate_ReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	doc := `name: broken
states: [a]
start_state: b
accepting_states: [a]
alphabet: ["0"]
blank: "_"
transitions:
  - {from_state: a, read_symbol: "1", write_symbol: "0", move: R, to_state: c}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "", "validate", path)
	require.ErrorIs(t, err, errInvalidDocuments)
	assert.Contains(t, out, "broken.yaml")
}

func TestValidate_Strict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orphan.yaml")
	doc := `name: orphan
states: [s, h, lost]
alphabet: ["0"]
blank: "_"
start_state: s
accepting_states: [h]
transitions:
  - {from_state: s, read_symbol: "_", write_symbol: "_", move: S, to_state: h}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `warning: state "lost" is unreachable`)

	_, err = execute(t, "", "validate", "--strict", path)
	assert.ErrorIs(t, err, errInvalidDocuments)
}

func TestRun_LimitExceeded(t *testing.T) {
	out, err := execute(t, "", "--step-limit", "2", "run", "caesar-encrypt-3", "HELLO")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	assert.Contains(t, out, string(domain.OutcomeLimitExceeded))
}

func TestRun_GraphOverlay(t *testing.T) {
	out, err := execute(t, "", "run", "--graph", "caesar-encrypt-1", "AB")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "\"BC\"")
}

func TestList(t *testing.T) {
	out, err := execute(t, "", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 52)
	assert.Contains(t, lines, "caesar-encrypt-1")
	assert.Contains(t, lines, "caesar-decrypt-25")
}

func TestCasesAndBatch(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "", "cases", dir)
	require.NoError(t, err)
	assert.Contains(t, out, batch.EncryptCasesFile)
	assert.Contains(t, out, batch.DecryptCasesFile)

	out, err = execute(t, "", "batch", filepath.Join(dir, batch.DecryptCasesFile))
	require.NoError(t, err)
	assert.Contains(t, out, "ROMA NO FUE CONSTRUIDA EN UN DIA")
	assert.Contains(t, out, "10 cases: 10 passed, 0 failed, 0 errors")

	out, err = execute(t, "", "batch", "--mode", "encrypt", "--json", filepath.Join(dir, batch.EncryptCasesFile))
	require.NoError(t, err)
	var results []batch.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 10)
	assert.Equal(t, "URPD QR IXH FRQVWUXLGD HQ XQ GLD", results[0].Output)
}

func TestMenu_Exit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "5\n", "menu", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Thanks for using")
	assert.FileExists(t, filepath.Join(dir, batch.EncryptCasesFile))
	assert.FileExists(t, filepath.Join(dir, batch.DecryptCasesFile))
}

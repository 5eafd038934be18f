package batch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/batch"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCase(t *testing.T) {
	tests := []struct {
		name string
		line string
		want batch.Case
	}{
		{"digits", "3#HOLA MUNDO", batch.Case{Key: "3", Shift: 3, Message: "HOLA MUNDO"}},
		{"letter", "D#CESAR", batch.Case{Key: "D", Shift: 4, Message: "CESAR"}},
		{"expected", "1#HOLA => IPMB", batch.Case{Key: "1", Shift: 1, Message: "HOLA", Expected: "IPMB"}},
		{"first separator wins", "2#A#B", batch.Case{Key: "2", Shift: 2, Message: "A#B"}},
		{"empty message", "5#", batch.Case{Key: "5", Shift: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := batch.ParseCase(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"HOLA", "#HOLA", "XX#HOLA"} {
		_, err := batch.ParseCase(bad)
		assert.ErrorIs(t, err, batch.ErrMalformedCase, bad)
	}
}

func TestParseCases(t *testing.T) {
	input := "// sample\n3#ROMA\n\n  1#HOLA MUNDO  \n"
	cases, err := batch.ParseCases(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, 2, cases[0].Line)
	assert.Equal(t, "ROMA", cases[0].Message)
	assert.Equal(t, 4, cases[1].Line)
	assert.Equal(t, "HOLA MUNDO", cases[1].Message)

	_, err = batch.ParseCases(strings.NewReader("3#OK\nbroken\n"))
	require.ErrorIs(t, err, batch.ErrMalformedCase)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteCases_RoundTrip(t *testing.T) {
	cases := batch.SampleEncryptCases()
	var buf bytes.Buffer
	require.NoError(t, batch.WriteCases(&buf, cases))

	parsed, err := batch.ParseCases(&buf)
	require.NoError(t, err)
	assert.Equal(t, cases, parsed)
}

func TestSampleEncryptCases(t *testing.T) {
	cases := batch.SampleEncryptCases()
	require.Len(t, cases, 10)
	assert.Equal(t, 26, cases[9].Shift, "Z maps to 26")
	assert.Equal(t, 1, cases[8].Shift, "A maps to 1")
}

func TestRunner_Encrypt(t *testing.T) {
	r := batch.NewRunner(cipher.New(), batch.WithConcurrency(2))
	cases := []batch.Case{
		{Line: 1, Key: "1", Shift: 1, Message: "HOLA MUNDO", Expected: "IPMB NVOEP"},
		{Line: 2, Key: "3", Shift: 3, Message: "HELLO"},
		{Line: 3, Key: "3", Shift: 3, Message: "HELLO", Expected: "WRONG"},
		{Line: 4, Key: "3", Shift: 3, Message: "hello"},
	}

	results, err := r.Run(context.Background(), cipher.Encrypt, cases)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, batch.StatusPass, results[0].Status)
	assert.Equal(t, batch.StatusOK, results[1].Status)
	assert.Equal(t, "KHOOR", results[1].Output)
	assert.Equal(t, 6, results[1].Steps)
	assert.Equal(t, batch.StatusFail, results[2].Status)
	assert.Equal(t, batch.StatusError, results[3].Status)
	assert.ErrorIs(t, results[3].Err, domain.ErrForeignSymbol)

	s := batch.Summarize(results)
	assert.Equal(t, batch.Summary{Total: 4, Passed: 2, Failed: 1, Errors: 1}, s)
	assert.False(t, s.OK())
	assert.Error(t, batch.Errors(results))
}

func TestRunner_LimitExceeded(t *testing.T) {
	r := batch.NewRunner(cipher.New(turing.WithStepLimit(2)))
	results, err := r.Run(context.Background(), cipher.Encrypt, []batch.Case{{Key: "1", Shift: 1, Message: "ABCD"}})
	require.NoError(t, err)
	assert.Equal(t, batch.StatusError, results[0].Status)
	assert.Equal(t, domain.OutcomeLimitExceeded, results[0].Outcome)
	assert.ErrorIs(t, results[0].Err, domain.ErrStepLimitExceeded)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := batch.NewRunner(cipher.New())
	_, err := r.Run(ctx, cipher.Encrypt, batch.SampleEncryptCases())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateDecryptCases(t *testing.T) {
	c := cipher.New()
	ctx := context.Background()

	decrypt, err := batch.GenerateDecryptCases(ctx, c, batch.SampleEncryptCases())
	require.NoError(t, err)
	require.Len(t, decrypt, 10)
	assert.Equal(t, "IPMB NVOEP", decrypt[1].Message)
	assert.Equal(t, "HOLA MUNDO", decrypt[1].Expected)

	results, err := batch.NewRunner(c).Run(ctx, cipher.Decrypt, decrypt)
	require.NoError(t, err)
	assert.True(t, batch.Summarize(results).OK())
	for _, r := range results {
		assert.Equal(t, batch.StatusPass, r.Status, r.Case.String())
	}
}

func TestInitDir(t *testing.T) {
	dir := t.TempDir()
	paths, err := batch.InitDir(context.Background(), cipher.New(), dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, batch.EncryptCasesFile), paths[0])

	enc, err := batch.LoadFile(paths[0])
	require.NoError(t, err)
	assert.Len(t, enc, 10)

	raw, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1#IPMB NVOEP => HOLA MUNDO")
}

func TestWriteReport(t *testing.T) {
	results, err := batch.NewRunner(cipher.New()).Run(context.Background(), cipher.Encrypt, []batch.Case{
		{Line: 1, Key: "3", Shift: 3, Message: "HELLO", Expected: "KHOOR"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, batch.WriteReport(&buf, results))
	out := buf.String()
	assert.Contains(t, out, "KHOOR")
	assert.Contains(t, out, "pass")
	assert.Contains(t, out, "1 cases: 1 passed, 0 failed, 0 errors")
}

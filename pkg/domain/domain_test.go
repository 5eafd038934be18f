package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Move
	}{
		{"L", domain.Left},
		{"left", domain.Left},
		{"R", domain.Right},
		{" Right ", domain.Right},
		{"S", domain.Stay},
		{"N", domain.Stay},
		{"stay", domain.Stay},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseMove(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseMove("up")
	assert.ErrorIs(t, err, domain.ErrInvalidMove)
}

func TestMove_Delta(t *testing.T) {
	assert.Equal(t, -1, domain.Left.Delta())
	assert.Equal(t, 1, domain.Right.Delta())
	assert.Equal(t, 0, domain.Stay.Delta())
}

func TestMove_Valid(t *testing.T) {
	for _, m := range []domain.Move{domain.Left, domain.Right, domain.Stay} {
		assert.True(t, m.Valid(), m.String())
	}
	assert.False(t, domain.Move(7).Valid())
	assert.Equal(t, "Move(7)", domain.Move(7).String())
}

func TestSymbols_RoundTrip(t *testing.T) {
	syms := domain.Symbols("HÉ_O")
	assert.Len(t, syms, 4)
	assert.Equal(t, domain.Symbol('É'), syms[1])
	assert.Equal(t, "HÉ_O", domain.Join(syms))
}

func TestRunError_Unwrap(t *testing.T) {
	rejected := &domain.RunError{Result: &domain.RunResult{Outcome: domain.OutcomeRejected, FinalState: "scan", Output: "AB"}}
	assert.True(t, errors.Is(rejected, domain.ErrRejected))
	assert.Contains(t, rejected.Error(), "scan")
	assert.Contains(t, rejected.Error(), `"AB"`)

	limited := &domain.RunError{Result: &domain.RunResult{Outcome: domain.OutcomeLimitExceeded}}
	assert.ErrorIs(t, limited, domain.ErrStepLimitExceeded)
}

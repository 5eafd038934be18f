package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	id := "contract-run-" + time.Now().Format("20060102150405")

	newRecord := func(id string) *domain.RunRecord {
		return &domain.RunRecord{
			ID:      id,
			Machine: "caesar-encrypt-3",
			Input:   "HELLO",
			Result: domain.RunResult{
				Tape:       domain.Symbols("KHOOR"),
				Output:     "KHOOR",
				FinalState: "done",
				Steps:      6,
				Outcome:    domain.OutcomeAccepted,
				Head:       5,
			},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		record := newRecord(id)
		require.NoError(t, store.Save(ctx, record), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record.Machine, loaded.Machine)
		assert.Equal(t, record.Input, loaded.Input)
		assert.Equal(t, "KHOOR", loaded.Result.Output)
		assert.Equal(t, domain.OutcomeAccepted, loaded.Result.Outcome)
		assert.Equal(t, 6, loaded.Result.Steps)
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := id + "-other"
		require.NoError(t, store.Save(ctx, newRecord(other)))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id)
		assert.Contains(t, ids, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, ids, id)
	})
}

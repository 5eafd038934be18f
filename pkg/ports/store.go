package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// RunStore defines the interface for keeping finished runs.
// Records are write-once: a run is never resumed from a stored record.
type RunStore interface {
	// Save persists the record under record.ID.
	Save(ctx context.Context, record *domain.RunRecord) error

	// Load retrieves a record by ID.
	// Returns domain.ErrRunNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored records.
	List(ctx context.Context) ([]string, error)
}

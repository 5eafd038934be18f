package ports

import (
	"errors"

	"github.com/aretw0/turing/pkg/machine"
)

// ErrMachineNotFound is returned by loaders that do not know the requested name.
var ErrMachineNotFound = errors.New("machine not found")

// MachineLoader defines how machines are retrieved by name.
type MachineLoader interface {
	// GetMachine returns the compiled spec registered under name.
	// It returns ErrMachineNotFound (possibly wrapped) for unknown names.
	GetMachine(name string) (*machine.Spec, error)

	// ListMachines returns the names of every machine the loader can provide, sorted.
	ListMachines() ([]string, error)
}

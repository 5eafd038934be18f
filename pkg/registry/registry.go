package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
)

// Registry resolves machine names across several loaders.
// Loaders are consulted in registration order; the first one that knows a name wins.
type Registry struct {
	mu      sync.RWMutex
	loaders []ports.MachineLoader
}

var _ ports.MachineLoader = (*Registry)(nil)

// NewRegistry creates a registry over the given loaders.
func NewRegistry(loaders ...ports.MachineLoader) *Registry {
	return &Registry{
		loaders: slices.Clone(loaders),
	}
}

// Register appends a loader. Later loaders only serve names earlier ones do not know.
func (r *Registry) Register(loader ports.MachineLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders = append(r.loaders, loader)
}

// GetMachine looks up a machine by name.
// Returns ports.ErrMachineNotFound if no loader knows it.
func (r *Registry) GetMachine(name string) (*machine.Spec, error) {
	r.mu.RLock()
	loaders := slices.Clone(r.loaders)
	r.mu.RUnlock()

	for _, l := range loaders {
		spec, err := l.GetMachine(name)
		if err == nil {
			return spec, nil
		}
		if !errors.Is(err, ports.ErrMachineNotFound) {
			return nil, fmt.Errorf("failed to load machine %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrMachineNotFound, name)
}

// ListMachines returns the sorted, de-duplicated names of every loader.
func (r *Registry) ListMachines() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for _, l := range r.loaders {
		ls, err := l.ListMachines()
		if err != nil {
			return nil, err
		}
		names = append(names, ls...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

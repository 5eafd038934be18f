package memory

import (
	"fmt"
	"slices"

	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
)

// Loader implements ports.MachineLoader over specs held in memory.
type Loader struct {
	specs map[string]*machine.Spec
}

// NewLoader parses the provided raw machine documents (YAML or JSON), keyed by name.
func NewLoader(data map[string]string) (*Loader, error) {
	specs := make(map[string]*machine.Spec, len(data))
	for name, doc := range data {
		spec, err := loader.Parse([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("machine %s: %w", name, err)
		}
		specs[name] = spec
	}
	return &Loader{specs: specs}, nil
}

// NewFromSpecs creates a Loader from compiled specs, keyed by their names.
func NewFromSpecs(specs ...*machine.Spec) (*Loader, error) {
	l := &Loader{specs: make(map[string]*machine.Spec, len(specs))}
	for _, s := range specs {
		if s.Name() == "" {
			return nil, fmt.Errorf("machine missing name")
		}
		l.specs[s.Name()] = s
	}
	return l, nil
}

// GetMachine returns the spec registered under name.
func (l *Loader) GetMachine(name string) (*machine.Spec, error) {
	spec, ok := l.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrMachineNotFound, name)
	}
	return spec, nil
}

// ListMachines returns all available machine names.
func (l *Loader) ListMachines() ([]string, error) {
	names := make([]string, 0, len(l.specs))
	for k := range l.specs {
		names = append(names, k)
	}
	slices.Sort(names) // Deterministic order
	return names, nil
}

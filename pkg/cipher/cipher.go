package cipher

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
)

type machineKey struct {
	mode  Mode
	shift int
}

// Cipher runs Caesar machines, compiling each (mode, shift) pair once.
// Safe for concurrent use.
type Cipher struct {
	opts     []turing.Option
	machines sync.Map // machineKey -> *turing.Machine
}

// New creates a Cipher; opts are applied to every machine it builds.
func New(opts ...turing.Option) *Cipher {
	return &Cipher{opts: opts}
}

// Machine returns the machine for mode and shift.
func (c *Cipher) Machine(mode Mode, shift int) (*turing.Machine, error) {
	key := machineKey{mode: mode, shift: Normalize(shift)}
	if m, ok := c.machines.Load(key); ok {
		return m.(*turing.Machine), nil
	}

	spec, err := machine.Compile(Definition(mode, shift))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", Name(mode, shift), err)
	}
	m, err := turing.New(spec, c.opts...)
	if err != nil {
		return nil, err
	}
	actual, _ := c.machines.LoadOrStore(key, m)
	return actual.(*turing.Machine), nil
}

// Apply runs the machine for mode and shift over msg and returns the raw result.
func (c *Cipher) Apply(ctx context.Context, mode Mode, shift int, msg string) (*domain.RunResult, error) {
	m, err := c.Machine(mode, shift)
	if err != nil {
		return nil, err
	}
	return m.Run(ctx, msg)
}

// Transform runs the machine for mode and shift and returns the output text.
func (c *Cipher) Transform(ctx context.Context, mode Mode, shift int, msg string) (string, error) {
	res, err := c.Apply(ctx, mode, shift, msg)
	if err != nil {
		return "", err
	}
	return turing.Output(res)
}

// Encrypt shifts msg forward by shift.
func (c *Cipher) Encrypt(ctx context.Context, shift int, msg string) (string, error) {
	return c.Transform(ctx, Encrypt, shift, msg)
}

// Decrypt shifts msg backward by shift.
func (c *Cipher) Decrypt(ctx context.Context, shift int, msg string) (string, error) {
	return c.Transform(ctx, Decrypt, shift, msg)
}

// Catalog exposes every Caesar machine by name as a ports.MachineLoader.
type Catalog struct {
	cipher *Cipher
}

var _ ports.MachineLoader = (*Catalog)(nil)

// NewCatalog creates a catalog backed by c.
func NewCatalog(c *Cipher) *Catalog {
	return &Catalog{cipher: c}
}

// GetMachine resolves names of the form caesar-<mode>-<shift>, shift in [0, 26).
func (c *Catalog) GetMachine(name string) (*machine.Spec, error) {
	var (
		mode  string
		shift int
	)
	if _, err := fmt.Sscanf(name, "caesar-%7s-%d", &mode, &shift); err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrMachineNotFound, name)
	}
	parsed, err := ParseMode(mode)
	if err != nil || shift < 0 || shift >= len(Letters) || Name(parsed, shift) != name {
		return nil, fmt.Errorf("%w: %s", ports.ErrMachineNotFound, name)
	}

	m, err := c.cipher.Machine(parsed, shift)
	if err != nil {
		return nil, err
	}
	return m.Spec(), nil
}

// ListMachines returns the names of all 52 Caesar machines.
func (c *Catalog) ListMachines() ([]string, error) {
	names := make([]string, 0, 2*len(Letters))
	for _, mode := range []Mode{Encrypt, Decrypt} {
		for shift := range len(Letters) {
			names = append(names, Name(mode, shift))
		}
	}
	slices.Sort(names)
	return names, nil
}

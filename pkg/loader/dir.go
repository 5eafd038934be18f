package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
)

var extensions = []string{".yaml", ".yml", ".json"}

// DirLoader implements ports.MachineLoader over a directory of machine documents.
// Files are compiled on first access and cached.
type DirLoader struct {
	dir   string
	mu    sync.Mutex
	cache map[string]*machine.Spec
}

// NewDirLoader creates a loader reading from dir.
func NewDirLoader(dir string) (*DirLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid machine directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid machine directory: %s is not a directory", dir)
	}
	return &DirLoader{dir: dir, cache: make(map[string]*machine.Spec)}, nil
}

// GetMachine compiles <dir>/<name>.{yaml,yml,json}.
func (l *DirLoader) GetMachine(name string) (*machine.Spec, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if spec, ok := l.cache[name]; ok {
		return spec, nil
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %s", ports.ErrMachineNotFound, name)
	}

	for _, ext := range extensions {
		path := filepath.Join(l.dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		spec, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		l.cache[name] = spec
		return spec, nil
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrMachineNotFound, name)
}

// ListMachines returns the names of the machine documents in the directory.
func (l *DirLoader) ListMachines() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(extensions, filepath.Ext(e.Name())) {
			continue
		}
		name := nameFromPath(e.Name())
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package epa

import (
	"fmt"
	"sort"
	"sync"
)

// FluxConstructor builds a flux model from its module parameters.
type FluxConstructor func(Module) (Flux, error)

// ProcessConstructor builds a two-parton process from its module parameters.
type ProcessConstructor func(Module) (Process, error)

var (
	registryMu          sync.RWMutex
	fluxConstructors    = map[string]FluxConstructor{}
	processConstructors = map[string]ProcessConstructor{}
)

// RegisterFlux makes a flux model available under name.
// Panics if name is empty or already registered.
func RegisterFlux(name string, ctor FluxConstructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if name == "" || ctor == nil {
		panic("epa: RegisterFlux needs a name and a constructor")
	}
	if _, dup := fluxConstructors[name]; dup {
		panic(fmt.Sprintf("epa: flux %q registered twice", name))
	}
	fluxConstructors[name] = ctor
}

// RegisterProcess makes a two-parton process available under name.
// Panics if name is empty or already registered.
func RegisterProcess(name string, ctor ProcessConstructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if name == "" || ctor == nil {
		panic("epa: RegisterProcess needs a name and a constructor")
	}
	if _, dup := processConstructors[name]; dup {
		panic(fmt.Sprintf("epa: process %q registered twice", name))
	}
	processConstructors[name] = ctor
}

// IsValidFlux returns true if name is a registered flux model.
func IsValidFlux(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := fluxConstructors[name]
	return ok
}

// IsValidProcess returns true if name is a registered process.
func IsValidProcess(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := processConstructors[name]
	return ok
}

// FluxNames returns the sorted list of registered flux models.
func FluxNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedKeys(fluxConstructors)
}

// ProcessNames returns the sorted list of registered processes.
func ProcessNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return sortedKeys(processConstructors)
}

// NewFlux builds the flux model named by m.
// Returns an ErrConfiguration error if the name is empty or unknown.
func NewFlux(m Module) (Flux, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("%w: no flux name given for the two-parton fluxes lookup table", ErrConfiguration)
	}
	registryMu.RLock()
	ctor, ok := fluxConstructors[m.Name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown flux %q (available: %v)", ErrConfiguration, m.Name, FluxNames())
	}
	return ctor(m)
}

// NewProcess builds the two-parton process named by m.
// Returns an ErrConfiguration error if the name is empty or unknown.
func NewProcess(m Module) (Process, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("%w: no process name given for the two-parton processes lookup table", ErrConfiguration)
	}
	registryMu.RLock()
	ctor, ok := processConstructors[m.Name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown process %q (available: %v)", ErrConfiguration, m.Name, ProcessNames())
	}
	return ctor(m)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

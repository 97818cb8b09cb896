package engine

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultEngineName is the engine used when none is requested.
const DefaultEngineName = "digits"

// Factory creates and caches named engines. Register takes the unexported
// coreEngine, so fakes outside this package start from TestFactory.
type Factory interface {
	// Create returns a new, uncached Engine by name.
	Create(name string) (Engine, error)

	// Get returns the cached Engine for name, creating it on first use.
	Get(name string) (Engine, error)

	// List returns the sorted registered engine names.
	List() []string

	// Register adds or replaces an engine type.
	Register(name string, creator func() coreEngine) error

	// GetAll returns every registered engine keyed by name.
	GetAll() map[string]Engine
}

// DefaultFactory is the thread-safe Factory implementation.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() coreEngine
	engines  map[string]Engine
}

// NewDefaultFactory returns a factory with the built-in engines registered:
//   - "digits": DigitEngine, the decimal digit arithmetic
//   - "stdlib": StdlibEngine, math/big used as a reference
//
// The "gmp" engine joins the global factory when built with -tags=gmp.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() coreEngine),
		engines:  make(map[string]Engine),
	}
	_ = f.Register(DefaultEngineName, func() coreEngine { return DigitEngine{} })
	_ = f.Register("stdlib", func() coreEngine { return StdlibEngine{} })
	return f
}

// Register adds a new engine type. The creator runs lazily on first use.
// Registering an existing name replaces it and drops the cached instance.
func (f *DefaultFactory) Register(name string, creator func() coreEngine) error {
	if name == "" || creator == nil {
		return fmt.Errorf("engine: invalid registration for %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.engines, name)
	return nil
}

// Create returns a fresh Engine without caching it.
func (f *DefaultFactory) Create(name string) (Engine, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	return NewEngine(creator()), nil
}

// Get returns the cached Engine for name.
//
// Parameters:
//   - name: The name of the engine to retrieve.
//
// Returns:
//   - Engine: The Engine instance.
//   - error: An error if the engine is not registered.
func (f *DefaultFactory) Get(name string) (Engine, error) {
	f.mu.RLock()
	if e, exists := f.engines[name]; exists {
		f.mu.RUnlock()
		return e, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring the write lock.
	if e, exists := f.engines[name]; exists {
		return e, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	e := NewEngine(creator())
	f.engines[name] = e
	return e, nil
}

// List returns the registered engine names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the name-to-engine map, creating missing
// instances.
func (f *DefaultFactory) GetAll() map[string]Engine {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.engines[name]; !exists {
			f.engines[name] = NewEngine(creator())
		}
	}
	result := make(map[string]Engine, len(f.engines))
	for name, e := range f.engines {
		result[name] = e
	}
	return result
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterEngine registers an engine in the global factory.
func RegisterEngine(name string, creator func() coreEngine) error {
	return globalFactory.Register(name, creator)
}

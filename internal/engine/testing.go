package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/agbru/bigcalc/internal/bigint"
)

// MockEngine is a configurable Engine for tests in other packages.
type MockEngine struct {
	// EngineName overrides the default "mock" name.
	EngineName string
	Result     bigint.Int
	Err        error
	Fn         func(ctx context.Context, req Request) (bigint.Int, error)
}

// Name returns the engine name.
func (m *MockEngine) Name() string {
	if m.EngineName != "" {
		return m.EngineName
	}
	return "mock"
}

// Compute returns the configured Result and Err, or calls Fn if set.
func (m *MockEngine) Compute(ctx context.Context, req Request) (bigint.Int, error) {
	if m.Fn != nil {
		return m.Fn(ctx, req)
	}
	return m.Result, m.Err
}

// TestFactory is a Factory over a fixed set of engines.
type TestFactory struct {
	engines map[string]Engine
}

// NewTestFactory creates a factory pre-populated with engines.
func NewTestFactory(engines map[string]Engine) *TestFactory {
	if engines == nil {
		engines = make(map[string]Engine)
	}
	return &TestFactory{engines: engines}
}

// Create returns the engine by name.
func (f *TestFactory) Create(name string) (Engine, error) {
	return f.Get(name)
}

// Get returns the engine by name.
func (f *TestFactory) Get(name string) (Engine, error) {
	e, ok := f.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	return e, nil
}

// List returns the sorted engine names.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.engines))
	for name := range f.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is not supported by TestFactory.
func (f *TestFactory) Register(name string, creator func() coreEngine) error {
	return fmt.Errorf("TestFactory does not support Register")
}

// GetAll returns a copy of the engine map.
func (f *TestFactory) GetAll() map[string]Engine {
	result := make(map[string]Engine, len(f.engines))
	for name, e := range f.engines {
		result[name] = e
	}
	return result
}

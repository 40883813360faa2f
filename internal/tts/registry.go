package tts

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrEngineNotFound is returned when an engine is not registered.
	ErrEngineNotFound = errors.New("speech engine not found")
	// ErrEngineExists is returned when trying to register a duplicate engine.
	ErrEngineExists = errors.New("speech engine already registered")
)

// Registry holds the speech engines the service can dispatch to.
// The first registered engine becomes the default.
type Registry struct {
	mu          sync.RWMutex
	byName      map[string]Engine
	defaultName string
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Engine)}
}

// Register adds an engine under its Name.
func (r *Registry) Register(engine Engine) error {
	name := engine.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("%w: %s", ErrEngineExists, name)
	}
	r.byName[name] = engine

	if r.defaultName == "" {
		r.defaultName = name
	}
	return nil
}

// lookup must be called with r.mu held.
func (r *Registry) lookup(name string) (Engine, error) {
	if engine, ok := r.byName[name]; ok {
		return engine, nil
	}
	if name == "" {
		return nil, ErrEngineNotFound
	}
	return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, name)
}

// Get retrieves an engine by name.
func (r *Registry) Get(name string) (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

// Default returns the default engine, or ErrEngineNotFound when the
// registry is empty.
func (r *Registry) Default() (Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.defaultName)
}

// Resolve returns the named engine, or the default one when name is empty.
func (r *Registry) Resolve(name string) (Engine, error) {
	if name == "" {
		return r.Default()
	}
	return r.Get(name)
}

// SetDefault makes the named engine the default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(name); err != nil {
		return err
	}
	r.defaultName = name
	return nil
}

// List returns the registered engine names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

package plugin

import (
	"fmt"
	"sort"
)

// Factory constructs a fresh plugin instance for one session.
type Factory func() Plugin

// Registry maps plugin names to factories. The host resolves names through
// it when switching plugins.
type Registry struct {
	factories map[string]Factory
	descs     map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		descs:     make(map[string]Descriptor),
	}
}

// Register adds a plugin factory. The factory is invoked once immediately
// to capture the descriptor. Duplicate names are an error.
func (r *Registry) Register(factory Factory) error {
	desc := factory().Descriptor()
	if desc.Name == "" {
		return fmt.Errorf("registering plugin with empty name")
	}
	if _, exists := r.factories[desc.Name]; exists {
		return fmt.Errorf("plugin %q already registered", desc.Name)
	}
	r.factories[desc.Name] = factory
	r.descs[desc.Name] = desc
	return nil
}

// Resolve instantiates a new plugin for the given name.
func (r *Registry) Resolve(name string) (Plugin, bool) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Describe returns the descriptor for a registered name.
func (r *Registry) Describe(name string) (Descriptor, bool) {
	desc, ok := r.descs[name]
	return desc, ok
}

// Names returns all registered plugin names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

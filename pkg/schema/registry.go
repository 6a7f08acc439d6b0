package schema

import "sync"

// Registry maps declared type names to type handles. Entries are added at
// declaration time and never removed; redeclaring a name replaces the entry,
// so the most recently declared type wins subsequent lookups, matching
// derive-and-redeclare usage where a local refinement of a shared type should
// satisfy references to the shared name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when a type or reference
// does not name one explicitly.
func Default() *Registry { return defaultRegistry }

// Register adds a type under its declared name.
func (r *Registry) Register(t *Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t.Name()] = t
}

// Lookup resolves a declared name to its type handle.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

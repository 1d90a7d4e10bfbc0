package processor

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a fresh processor instance.
type Factory func() Processor

// Registry collects processor factories by ID.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under id.
func (r *Registry) Register(id string, f Factory) error {
	if id == "" || f == nil {
		return fmt.Errorf("register processor %q: empty id or nil factory", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProcessor, id)
	}
	r.factories[id] = f
	return nil
}

// IDs returns registered IDs sorted.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.factories))
	for id := range r.factories {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// New instantiates the processor registered under id.
func (r *Registry) New(id string) (Processor, bool) {
	r.mu.Lock()
	f, ok := r.factories[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	return f(), true
}

// All instantiates every registered processor in ID order.
func (r *Registry) All() []Processor {
	ids := r.IDs()
	out := make([]Processor, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.New(id); ok {
			out = append(out, p)
		}
	}
	return out
}

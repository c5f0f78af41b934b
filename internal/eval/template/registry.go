package template

import (
	"sort"
	"sync"
)

// HelperFunc implements a helper. It receives the resolved arguments, the
// data context and the inner template through call and returns any
// JSON-shaped value. Returned errors reach the caller of ApplyTemplate as is.
type HelperFunc func(call *Call) (interface{}, error)

// Registry maps helper names to helpers. The last registration of a name wins.
type Registry struct {
	mu      sync.RWMutex
	helpers map[string]HelperFunc
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		helpers: make(map[string]HelperFunc),
	}
}

// Register adds or replaces a helper. Registering nil removes the name.
func (r *Registry) Register(name string, fn HelperFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		delete(r.helpers, name)
		return
	}
	r.helpers[name] = fn
}

// RegisterAll registers every entry of helpers
func (r *Registry) RegisterAll(helpers map[string]HelperFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, fn := range helpers {
		if fn == nil {
			delete(r.helpers, name)
			continue
		}
		r.helpers[name] = fn
	}
}

// Get returns the helper registered under the exact name
func (r *Registry) Get(name string) (HelperFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.helpers[name]
	return fn, ok
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package agents maps agent names to callable implementations: builtin
// in-process agents, remote JSON-RPC agents discovered through the
// capability directory, and registered composites.
package agents

import (
	"sync"

	"github.com/soochol/weave/internal/weave"
)

// ResolverFunc resolves an agent name outside the local registry.
type ResolverFunc func(name string) (weave.Invoker, bool)

// Registry resolves agent names to invokers. Locally registered agents
// win; fallbacks are consulted in registration order.
type Registry struct {
	mu        sync.RWMutex
	local     map[string]weave.Invoker
	fallbacks []ResolverFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{local: make(map[string]weave.Invoker)}
}

// Register adds or replaces a local agent.
func (r *Registry) Register(name string, inv weave.Invoker) {
	r.mu.Lock()
	r.local[name] = inv
	r.mu.Unlock()
}

// AddFallback appends a resolver consulted when no local agent matches.
func (r *Registry) AddFallback(f ResolverFunc) {
	r.mu.Lock()
	r.fallbacks = append(r.fallbacks, f)
	r.mu.Unlock()
}

// Resolve returns the invoker for name, if any.
func (r *Registry) Resolve(name string) (weave.Invoker, bool) {
	r.mu.RLock()
	inv, ok := r.local[name]
	fallbacks := r.fallbacks
	r.mu.RUnlock()
	if ok {
		return inv, true
	}
	for _, f := range fallbacks {
		if inv, ok := f(name); ok {
			return inv, true
		}
	}
	return nil, false
}

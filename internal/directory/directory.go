// Package directory implements the agent capability directory: a read-mostly
// catalog of agent cards merged from several sources behind one process
// cache. Every write path (composite registration, registry change) must
// call Invalidate so readers observe their own writes.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/soochol/weave/internal/weave"
)

// ErrAgentNotFound is returned when no source knows the requested agent.
var ErrAgentNotFound = errors.New("agent not found")

// ErrMethodNotFound is returned when the agent exists but does not declare
// the requested method.
var ErrMethodNotFound = errors.New("method not found")

// Source contributes agent cards to the directory.
type Source interface {
	Cards(ctx context.Context) ([]weave.AgentCard, error)
}

// Directory merges cards from all sources and caches the merged view.
// Later sources shadow earlier ones on agent-name collision.
type Directory struct {
	mu      sync.RWMutex
	sources []Source
	cache   []weave.AgentCard
	valid   bool
}

// New creates a Directory over the given sources.
func New(sources ...Source) *Directory {
	return &Directory{sources: sources}
}

// List returns all known agent cards, rebuilding the cache if a write
// invalidated it.
func (d *Directory) List(ctx context.Context) ([]weave.AgentCard, error) {
	d.mu.RLock()
	if d.valid {
		cards := d.cache
		d.mu.RUnlock()
		return cards, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.valid {
		return d.cache, nil
	}

	seen := make(map[string]int)
	var merged []weave.AgentCard
	for _, src := range d.sources {
		cards, err := src.Cards(ctx)
		if err != nil {
			return nil, fmt.Errorf("directory source: %w", err)
		}
		for _, c := range cards {
			if i, ok := seen[c.Name]; ok {
				merged[i] = c
				continue
			}
			seen[c.Name] = len(merged)
			merged = append(merged, c)
		}
	}
	d.cache = merged
	d.valid = true
	return merged, nil
}

// Lookup resolves (agent, method) to its card and method spec.
func (d *Directory) Lookup(ctx context.Context, agent, method string) (*weave.AgentCard, *weave.MethodSpec, error) {
	cards, err := d.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	for i := range cards {
		if cards[i].Name != agent {
			continue
		}
		m := cards[i].Method(method)
		if m == nil {
			return nil, nil, fmt.Errorf("agent %q: %w: %q", agent, ErrMethodNotFound, method)
		}
		return &cards[i], m, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrAgentNotFound, agent)
}

// Invalidate drops the cached view. It must be called synchronously by
// every write path so a subsequent read rebuilds from the sources.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	d.valid = false
	d.cache = nil
	d.mu.Unlock()
}

// Package services wires the orchestration core together: composite
// registration, sink resolution, run history, and scheduling.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soochol/weave/internal/engine"
	"github.com/soochol/weave/internal/repository"
	"github.com/soochol/weave/internal/weave"
)

// ErrEmptyWorkflow rejects composites with no nodes.
var ErrEmptyWorkflow = errors.New("workflow has no nodes")

// ErrDuplicateName rejects composites whose name is already registered.
var ErrDuplicateName = errors.New("composite name already registered")

// ErrCompositeCycle rejects composites that embed themselves, directly or
// through other composites.
var ErrCompositeCycle = errors.New("composite embeds itself")

// CompositeService registers workflow graphs as reusable agents. On every
// successful write it invalidates the capability directory cache so the
// new card is immediately visible.
type CompositeService struct {
	repo       repository.CompositeRepository
	lookup     engine.CapabilityLookup
	invalidate func()
}

// NewCompositeService creates a CompositeService. invalidate is called
// synchronously after each successful registration or removal.
func NewCompositeService(repo repository.CompositeRepository, lookup engine.CapabilityLookup, invalidate func()) *CompositeService {
	if invalidate == nil {
		invalidate = func() {}
	}
	return &CompositeService{repo: repo, lookup: lookup, invalidate: invalidate}
}

// Register validates and persists a workflow graph as a composite agent
// and returns the synthetic card published for it.
func (s *CompositeService) Register(ctx context.Context, name, description string, wf *weave.WorkflowDefinition) (*weave.AgentCard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("composite name is required")
	}
	if len(wf.Nodes) == 0 {
		return nil, ErrEmptyWorkflow
	}
	if _, err := engine.BuildDAG(wf); err != nil {
		return nil, fmt.Errorf("invalid workflow: %w", err)
	}
	if _, err := s.repo.Get(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if err := s.checkCompositionCycle(ctx, name, wf, map[string]bool{}); err != nil {
		return nil, err
	}

	resolved := engine.ResolveParams(ctx, wf, s.lookup)

	now := time.Now()
	def := &weave.CompositeDefinition{
		Name:        name,
		Description: description,
		Nodes:       wf.Nodes,
		Edges:       wf.Edges,
		Params:      resolved.Params,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, def); err != nil {
		if errors.Is(err, repository.ErrExists) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		return nil, err
	}
	s.invalidate()

	return &weave.AgentCard{
		Name:        name,
		Description: description,
		Methods: []weave.MethodSpec{{
			Name:        weave.CompositeMethodName,
			Description: description,
			Params:      resolved.Params,
		}},
	}, nil
}

// checkCompositionCycle walks the arena of named graphs: a node invoking a
// composite is an edge in the composition graph, and the graph being
// registered must never reach its own name. This is separate from the
// per-graph node/edge DAG check.
func (s *CompositeService) checkCompositionCycle(ctx context.Context, name string, wf *weave.WorkflowDefinition, visited map[string]bool) error {
	for _, n := range wf.Nodes {
		if n.Agent == name {
			return fmt.Errorf("%w: %q reached via agent %q", ErrCompositeCycle, name, n.Agent)
		}
		if visited[n.Agent] {
			continue
		}
		visited[n.Agent] = true
		embedded, err := s.repo.Get(ctx, n.Agent)
		if err != nil {
			continue // not a composite: a primitive agent cannot embed anything
		}
		if err := s.checkCompositionCycle(ctx, name, embedded.Workflow(), visited); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a registered composite by name.
func (s *CompositeService) Get(ctx context.Context, name string) (*weave.CompositeDefinition, error) {
	return s.repo.Get(ctx, name)
}

// List returns all registered composites.
func (s *CompositeService) List(ctx context.Context) ([]*weave.CompositeDefinition, error) {
	return s.repo.List(ctx)
}

// Remove deletes a composite and invalidates the directory cache.
func (s *CompositeService) Remove(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

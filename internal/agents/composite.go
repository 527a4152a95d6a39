package agents

import (
	"context"
	"fmt"

	"github.com/soochol/weave/internal/weave"
)

// maxCompositeDepth bounds nested composite invocation as a backstop; the
// registrar already rejects composition cycles at registration time.
const maxCompositeDepth = 10

type depthKey struct{}

// WorkflowRunner executes an embedded graph. Satisfied by engine.Runner.
type WorkflowRunner interface {
	Execute(ctx context.Context, wf *weave.WorkflowDefinition, inputs map[string]any) (*weave.RunResult, error)
}

// CompositeGetter is the slice of the composite store invocation needs.
type CompositeGetter interface {
	Get(ctx context.Context, name string) (*weave.CompositeDefinition, error)
}

// CompositeAgent interprets a registered composite: invoking its single
// method runs the embedded graph through the engine. Composites may embed
// other composites; each nesting level increments a depth counter.
type CompositeAgent struct {
	def    *weave.CompositeDefinition
	runner WorkflowRunner
}

// NewCompositeAgent creates an invoker for one registered composite.
func NewCompositeAgent(def *weave.CompositeDefinition, runner WorkflowRunner) *CompositeAgent {
	return &CompositeAgent{def: def, runner: runner}
}

func (a *CompositeAgent) Invoke(ctx context.Context, method string, inputs map[string]any) (any, error) {
	if method != weave.CompositeMethodName {
		return nil, fmt.Errorf("composite %q has no method %q", a.def.Name, method)
	}

	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= maxCompositeDepth {
		return nil, fmt.Errorf("composite %q: max nesting depth %d exceeded", a.def.Name, maxCompositeDepth)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)

	result, err := a.runner.Execute(ctx, a.def.Workflow(), inputs)
	if err != nil {
		return nil, fmt.Errorf("composite %q: %w", a.def.Name, err)
	}
	if result.Status == weave.StatusError {
		return nil, fmt.Errorf("composite %q run failed", a.def.Name)
	}
	return map[string]any{
		"status": result.Status,
		"logs":   result.Logs,
	}, nil
}

// CompositeResolver resolves agent names against the composite store.
func CompositeResolver(store CompositeGetter, runner WorkflowRunner) ResolverFunc {
	return func(name string) (weave.Invoker, bool) {
		def, err := store.Get(context.Background(), name)
		if err != nil || def == nil {
			return nil, false
		}
		return NewCompositeAgent(def, runner), true
	}
}

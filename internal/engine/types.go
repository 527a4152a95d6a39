// Package engine executes validated workflow graphs: topological ordering,
// per-node agent invocation, result propagation over declared wiring, and a
// complete structural trace regardless of per-node outcomes.
package engine

import (
	"context"

	"github.com/soochol/weave/internal/weave"
)

// CapabilityLookup resolves (agent, method) pairs to their published specs.
// Satisfied by directory.Directory.
type CapabilityLookup interface {
	Lookup(ctx context.Context, agent, method string) (*weave.AgentCard, *weave.MethodSpec, error)
}

// InvokerResolver maps an agent name to a callable implementation.
// Satisfied by agents.Registry.
type InvokerResolver interface {
	Resolve(name string) (weave.Invoker, bool)
}

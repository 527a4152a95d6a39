package engine

import (
	"context"
	"log/slog"

	"github.com/soochol/weave/internal/weave"
)

// ResolvedParams is the external input surface of a graph: the union of
// all declared parameters across its nodes plus an initial value map.
type ResolvedParams struct {
	Params  []weave.ParamSpec `json:"params"`
	Initial map[string]any    `json:"initial"`
}

// ResolveParams computes the minimal set of externally supplied inputs a
// run of wf requires. Parameters are keyed by name; when two methods
// declare the same name the later declaration wins (an accepted
// simplification, not a conflict). Nodes whose agent or method cannot be
// resolved are skipped with a warning: the run may still be attempted with
// whatever nodes do resolve.
//
// The function has no side effects and is idempotent for the same
// (graph, directory) pair.
func ResolveParams(ctx context.Context, wf *weave.WorkflowDefinition, lookup CapabilityLookup) ResolvedParams {
	var params []weave.ParamSpec
	index := make(map[string]int)

	for _, n := range wf.Nodes {
		_, method, err := lookup.Lookup(ctx, n.Agent, n.Method)
		if err != nil {
			slog.Warn("parameter resolution skipping node",
				"node", n.ID, "agent", n.Agent, "method", n.Method, "err", err)
			continue
		}
		for _, p := range method.Params {
			if i, seen := index[p.Name]; seen {
				params[i] = p
				continue
			}
			index[p.Name] = len(params)
			params = append(params, p)
		}
	}

	initial := make(map[string]any, len(params))
	for _, p := range params {
		initial[p.Name] = ""
	}
	return ResolvedParams{Params: params, Initial: initial}
}

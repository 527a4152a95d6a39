package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/soochol/weave/internal/weave"
)

const defaultCallTimeout = 10 * time.Second

// Runner executes workflow graphs against the capability directory and the
// agent registry. Runners are stateless across runs; concurrent runs share
// nothing but the read-mostly directory cache.
type Runner struct {
	lookup   CapabilityLookup
	invokers InvokerResolver
	timeout  time.Duration
}

// NewRunner creates a Runner. timeout bounds each agent invocation; zero
// selects the default.
func NewRunner(lookup CapabilityLookup, invokers InvokerResolver, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Runner{lookup: lookup, invokers: invokers, timeout: timeout}
}

// Execute runs a workflow. Structural violations (empty graph, dangling
// edge, cycle) fail immediately with a nil result and zero log entries.
// Otherwise every node produces exactly one log entry: a node failure does
// not halt the run, successors are still attempted with whatever wired
// upstream outputs exist.
//
// Nodes with no dependency relation execute concurrently; the returned log
// is ordered by node declaration regardless of completion order.
func (r *Runner) Execute(ctx context.Context, wf *weave.WorkflowDefinition, initialInputs map[string]any) (*weave.RunResult, error) {
	dag, err := BuildDAG(wf)
	if err != nil {
		return nil, fmt.Errorf("invalid workflow: %w", err)
	}

	done := make(map[string]chan struct{}, len(wf.Nodes))
	for _, n := range wf.Nodes {
		done[n.ID] = make(chan struct{})
	}

	var mu sync.Mutex
	entries := make(map[string]*weave.ExecutionLogEntry, len(wf.Nodes))
	outputs := make(map[string]any)

	var wg sync.WaitGroup
	for _, nodeID := range dag.TopologicalOrder() {
		nodeID := nodeID
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer close(done[nodeID])

			for _, parentID := range dag.Parents(nodeID) {
				select {
				case <-done[parentID]:
				case <-ctx.Done():
					mu.Lock()
					entries[nodeID] = r.cancelledEntry(dag.Node(nodeID), ctx.Err())
					mu.Unlock()
					return
				}
			}

			node := dag.Node(nodeID)

			mu.Lock()
			inputs := r.buildInputs(ctx, dag, node, initialInputs, outputs)
			mu.Unlock()

			entry := r.invokeNode(ctx, node, inputs)

			mu.Lock()
			entries[nodeID] = entry
			if entry.Status != weave.StatusError {
				outputs[nodeID] = entry.Output
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	logs := make([]weave.ExecutionLogEntry, 0, len(wf.Nodes))
	for _, n := range wf.Nodes {
		if e := entries[n.ID]; e != nil {
			logs = append(logs, *e)
		}
	}
	return &weave.RunResult{Status: weave.DeriveRunStatus(logs), Logs: logs}, nil
}

// buildInputs merges, with increasing precedence: node defaults, caller
// inputs, then upstream outputs declared by edge wiring. Values missing
// upstream stay absent rather than being zero-filled. Caller must hold mu.
func (r *Runner) buildInputs(ctx context.Context, dag *DAG, node *weave.NodeDefinition, initialInputs map[string]any, outputs map[string]any) map[string]any {
	_, method, lookupErr := r.lookup.Lookup(ctx, node.Agent, node.Method)

	declared := func(name string) bool {
		if lookupErr != nil || method == nil {
			// Unknown spec: let the agent decide what it accepts.
			return true
		}
		for _, p := range method.Params {
			if p.Name == name {
				return true
			}
		}
		return false
	}

	merged := make(map[string]any)
	for k, v := range node.Inputs {
		if declared(k) {
			merged[k] = v
		}
	}
	for k, v := range initialInputs {
		if declared(k) {
			merged[k] = v
		}
	}

	for _, edge := range dag.InEdges(node.ID) {
		src, ok := outputs[edge.From]
		if !ok {
			continue // upstream failed or produced nothing: explicit absence
		}
		params := make([]string, 0, len(edge.Wiring))
		for p := range edge.Wiring {
			params = append(params, p)
		}
		sort.Strings(params)
		for _, param := range params {
			field := edge.Wiring[param]
			if field == "" {
				merged[param] = src
				continue
			}
			srcMap, ok := src.(map[string]any)
			if !ok {
				continue
			}
			if v, ok := srcMap[field]; ok {
				merged[param] = v
			}
		}
	}
	return merged
}

// invokeNode performs one bounded agent call and records its outcome.
func (r *Runner) invokeNode(ctx context.Context, node *weave.NodeDefinition, inputs map[string]any) *weave.ExecutionLogEntry {
	entry := &weave.ExecutionLogEntry{
		NodeID: node.ID,
		Agent:  node.Agent,
		Method: node.Method,
		Inputs: inputs,
	}

	invoker, ok := r.invokers.Resolve(node.Agent)
	if !ok {
		entry.Status = weave.StatusError
		entry.Error = fmt.Sprintf("agent %q is not registered", node.Agent)
		return entry
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	output, err := invoker.Invoke(callCtx, node.Method, inputs)
	entry.DurationMS = time.Since(start).Milliseconds()

	if err != nil {
		entry.Status = weave.StatusError
		entry.Error = fmt.Sprintf("%s.%s: %v", node.Agent, node.Method, err)
		return entry
	}

	if fan, ok := fanOutOf(output); ok {
		entry.Details = fan.Items
		entry.Output = fan.Output
		entry.Status = fanOutStatus(fan.Items)
		if entry.Status == weave.StatusError {
			entry.Error = fmt.Sprintf("%s.%s: all fan-out items failed", node.Agent, node.Method)
		}
		return entry
	}

	entry.Status = weave.StatusSuccess
	entry.Output = output
	return entry
}

func (r *Runner) cancelledEntry(node *weave.NodeDefinition, err error) *weave.ExecutionLogEntry {
	return &weave.ExecutionLogEntry{
		NodeID: node.ID,
		Agent:  node.Agent,
		Method: node.Method,
		Status: weave.StatusError,
		Error:  fmt.Sprintf("%s.%s: run cancelled: %v", node.Agent, node.Method, err),
	}
}

func fanOutOf(output any) (*weave.FanOutResult, bool) {
	switch v := output.(type) {
	case *weave.FanOutResult:
		return v, v != nil
	case weave.FanOutResult:
		return &v, true
	}
	return nil, false
}

// fanOutStatus collapses per-item outcomes: all success is success, all
// error is error, a mix is partial_success. Mixed outcomes are never
// silently folded into either extreme.
func fanOutStatus(items []weave.SubEntry) weave.Status {
	if len(items) == 0 {
		return weave.StatusSuccess
	}
	var succeeded, failed int
	for _, it := range items {
		if it.Status == weave.StatusError {
			failed++
		} else {
			succeeded++
		}
	}
	switch {
	case failed == 0:
		return weave.StatusSuccess
	case succeeded == 0:
		return weave.StatusError
	default:
		return weave.StatusPartialSuccess
	}
}

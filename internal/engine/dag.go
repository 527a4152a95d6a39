package engine

import (
	"fmt"

	"github.com/soochol/weave/internal/weave"
)

// DAG is the validated, indexed form of a workflow graph.
type DAG struct {
	nodes     map[string]*weave.NodeDefinition
	declOrder map[string]int
	children  map[string][]string
	parents   map[string][]string
	inEdges   map[string][]weave.EdgeDefinition
	topoOrder []string
}

// BuildDAG validates a workflow graph and computes a deterministic
// topological order. Duplicate node IDs, dangling edge endpoints, empty
// graphs, and cycles are structural errors: the run must fail before any
// agent is invoked.
func BuildDAG(wf *weave.WorkflowDefinition) (*DAG, error) {
	if len(wf.Nodes) == 0 {
		return nil, fmt.Errorf("workflow has no nodes")
	}

	dag := &DAG{
		nodes:     make(map[string]*weave.NodeDefinition),
		declOrder: make(map[string]int),
		children:  make(map[string][]string),
		parents:   make(map[string][]string),
		inEdges:   make(map[string][]weave.EdgeDefinition),
	}

	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if _, exists := dag.nodes[n.ID]; exists {
			return nil, fmt.Errorf("duplicate node ID: %s", n.ID)
		}
		dag.nodes[n.ID] = n
		dag.declOrder[n.ID] = i
	}

	for _, e := range wf.Edges {
		if _, ok := dag.nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge references unknown node: %s", e.From)
		}
		if _, ok := dag.nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge references unknown node: %s", e.To)
		}
		dag.children[e.From] = append(dag.children[e.From], e.To)
		dag.parents[e.To] = append(dag.parents[e.To], e.From)
		dag.inEdges[e.To] = append(dag.inEdges[e.To], e)
	}

	order, err := dag.topoSort(wf)
	if err != nil {
		return nil, err
	}
	dag.topoOrder = order
	return dag, nil
}

// topoSort runs Kahn's algorithm. Ties are broken by node declaration
// order so the trace ordering is a stable, user-facing contract.
func (d *DAG) topoSort(wf *weave.WorkflowDefinition) ([]string, error) {
	inDegree := make(map[string]int)
	for id := range d.nodes {
		inDegree[id] = 0
	}
	for _, children := range d.children {
		for _, c := range children {
			inDegree[c]++
		}
	}

	done := make(map[string]bool)
	var order []string
	for len(order) < len(d.nodes) {
		progressed := false
		for _, n := range wf.Nodes {
			if done[n.ID] || inDegree[n.ID] != 0 {
				continue
			}
			done[n.ID] = true
			order = append(order, n.ID)
			for _, c := range d.children[n.ID] {
				inDegree[c]--
			}
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("cycle detected in workflow graph")
		}
	}
	return order, nil
}

// TopologicalOrder returns node IDs in deterministic execution order.
func (d *DAG) TopologicalOrder() []string { return d.topoOrder }

// Parents returns the IDs of nodes with an edge into nodeID.
func (d *DAG) Parents(nodeID string) []string { return d.parents[nodeID] }

// Children returns the IDs of nodes nodeID has an edge to.
func (d *DAG) Children(nodeID string) []string { return d.children[nodeID] }

// InEdges returns the edges terminating at nodeID in declaration order.
func (d *DAG) InEdges(nodeID string) []weave.EdgeDefinition { return d.inEdges[nodeID] }

// Node returns the definition for id.
func (d *DAG) Node(id string) *weave.NodeDefinition { return d.nodes[id] }

// Roots returns all start nodes (no incoming edge).
func (d *DAG) Roots() []string {
	var roots []string
	for _, id := range d.topoOrder {
		if len(d.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

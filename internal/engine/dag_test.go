package engine

import (
	"testing"

	"github.com/soochol/weave/internal/weave"
)

func TestBuildDAG(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "a", Agent: "auth", Method: "login"},
			{ID: "b", Agent: "search", Method: "byTitle"},
			{ID: "c", Agent: "notify", Method: "send"},
		},
		Edges: []weave.EdgeDefinition{
			{From: "a", To: "b"},
			{From: "b", To: "c"},
		},
	}
	d, err := BuildDAG(wf)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	order := d.TopologicalOrder()
	if len(order) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(order))
	}
	idx := map[string]int{}
	for i, id := range order {
		idx[id] = i
	}
	if idx["a"] >= idx["b"] || idx["b"] >= idx["c"] {
		t.Fatalf("wrong order: %v", order)
	}
}

func TestBuildDAGEmptyGraph(t *testing.T) {
	_, err := BuildDAG(&weave.WorkflowDefinition{})
	if err == nil {
		t.Fatal("expected empty graph error")
	}
}

func TestBuildDAGDuplicateNodeID(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "a", Agent: "x", Method: "m"},
			{ID: "a", Agent: "y", Method: "m"},
		},
	}
	if _, err := BuildDAG(wf); err == nil {
		t.Fatal("expected duplicate node error")
	}
}

func TestBuildDAGDanglingEdge(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{{ID: "a", Agent: "x", Method: "m"}},
		Edges: []weave.EdgeDefinition{{From: "a", To: "ghost"}},
	}
	if _, err := BuildDAG(wf); err == nil {
		t.Fatal("expected dangling edge error")
	}
}

func TestBuildDAGCycleDetection(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "a", Agent: "x", Method: "m"},
			{ID: "b", Agent: "y", Method: "m"},
		},
		Edges: []weave.EdgeDefinition{
			{From: "a", To: "b"},
			{From: "b", To: "a"},
		},
	}
	if _, err := BuildDAG(wf); err == nil {
		t.Fatal("expected cycle error")
	}
}

// Independent branches must come out in declaration order, every time.
func TestTopologicalOrderDeterministic(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "root", Agent: "x", Method: "m"},
			{ID: "left", Agent: "x", Method: "m"},
			{ID: "right", Agent: "x", Method: "m"},
		},
		Edges: []weave.EdgeDefinition{
			{From: "root", To: "left"},
			{From: "root", To: "right"},
		},
	}
	var first []string
	for i := 0; i < 20; i++ {
		d, err := BuildDAG(wf)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		order := d.TopologicalOrder()
		if first == nil {
			first = order
			continue
		}
		for j := range order {
			if order[j] != first[j] {
				t.Fatalf("order changed between builds: %v vs %v", order, first)
			}
		}
	}
	if first[0] != "root" || first[1] != "left" || first[2] != "right" {
		t.Fatalf("expected declaration order for siblings, got %v", first)
	}
}

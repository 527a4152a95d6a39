package engine

import (
	"context"
	"testing"

	"github.com/soochol/weave/internal/weave"
)

func TestResolveParamsUnion(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "n1", Agent: "auth", Method: "login"},
			{ID: "n2", Agent: "search", Method: "byTitle"},
		},
	}
	resolved := ResolveParams(context.Background(), wf, libraryLookup())

	names := make(map[string]bool)
	for _, p := range resolved.Params {
		if names[p.Name] {
			t.Fatalf("duplicate param %q in union", p.Name)
		}
		names[p.Name] = true
	}
	for _, want := range []string{"username", "password", "token", "title"} {
		if !names[want] {
			t.Fatalf("missing param %q, got %v", want, names)
		}
	}
	for _, p := range resolved.Params {
		if resolved.Initial[p.Name] != "" {
			t.Fatalf("initial value for %q must be empty", p.Name)
		}
	}
}

// Two methods declaring the same parameter name: the later declaration
// wins, without erroring.
func TestResolveParamsLastWriterWins(t *testing.T) {
	lookup := &fakeLookup{cards: map[string]weave.AgentCard{
		"a": {Name: "a", Methods: []weave.MethodSpec{
			{Name: "m", Params: []weave.ParamSpec{{Name: "limit", Type: "string", Description: "first"}}},
		}},
		"b": {Name: "b", Methods: []weave.MethodSpec{
			{Name: "m", Params: []weave.ParamSpec{{Name: "limit", Type: "number", Description: "second"}}},
		}},
	}}
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "n1", Agent: "a", Method: "m"},
			{ID: "n2", Agent: "b", Method: "m"},
		},
	}
	resolved := ResolveParams(context.Background(), wf, lookup)
	if len(resolved.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(resolved.Params))
	}
	if resolved.Params[0].Type != "number" || resolved.Params[0].Description != "second" {
		t.Fatalf("later declaration must win, got %+v", resolved.Params[0])
	}
}

func TestResolveParamsSkipsUnresolvable(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "n1", Agent: "auth", Method: "login"},
			{ID: "n2", Agent: "ghost", Method: "vanish"},
		},
	}
	resolved := ResolveParams(context.Background(), wf, libraryLookup())
	if len(resolved.Params) != 2 {
		t.Fatalf("expected params from resolvable node only, got %d", len(resolved.Params))
	}
}

func TestResolveParamsIdempotent(t *testing.T) {
	wf := &weave.WorkflowDefinition{
		Nodes: []weave.NodeDefinition{
			{ID: "n1", Agent: "auth", Method: "login"},
			{ID: "n2", Agent: "search", Method: "byTitle"},
		},
	}
	lookup := libraryLookup()
	first := ResolveParams(context.Background(), wf, lookup)
	second := ResolveParams(context.Background(), wf, lookup)
	if len(first.Params) != len(second.Params) {
		t.Fatalf("resolution changed between calls: %d vs %d", len(first.Params), len(second.Params))
	}
	for i := range first.Params {
		if first.Params[i] != second.Params[i] {
			t.Fatalf("param %d changed: %+v vs %+v", i, first.Params[i], second.Params[i])
		}
	}
}

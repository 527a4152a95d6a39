package weave

import "time"

// CompositeMethodName is the single method every registered composite
// exposes through the capability directory.
const CompositeMethodName = "run"

// CompositeDefinition is a registered workflow graph exposed as a reusable
// agent. From a caller's perspective it is indistinguishable from a
// primitive agent with one method.
type CompositeDefinition struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Nodes       []NodeDefinition `json:"nodes"`
	Edges       []EdgeDefinition `json:"edges"`
	// Params is the parameter-resolver output for the embedded graph,
	// computed once at registration so the directory can publish the
	// synthetic card without re-walking the graph.
	Params    []ParamSpec `json:"params,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Workflow returns the embedded graph as an executable definition.
func (c *CompositeDefinition) Workflow() *WorkflowDefinition {
	return &WorkflowDefinition{
		Name:        c.Name,
		Description: c.Description,
		Nodes:       c.Nodes,
		Edges:       c.Edges,
	}
}

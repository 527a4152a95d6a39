// Package weave defines the core domain types shared across the
// orchestration engine, the capability directory, and the query pipeline.
package weave

// WorkflowDefinition is a user-authored directed acyclic graph of agent
// method invocations. Graphs are transient: the engine only reads them.
type WorkflowDefinition struct {
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Nodes       []NodeDefinition `json:"nodes" yaml:"nodes"`
	Edges       []EdgeDefinition `json:"edges" yaml:"edges"`
}

// NodeDefinition binds a graph node to one agent method. Inputs are
// node-level defaults with the lowest merge precedence at run time.
type NodeDefinition struct {
	ID     string         `json:"id" yaml:"id"`
	Agent  string         `json:"agent" yaml:"agent"`
	Method string         `json:"method" yaml:"method"`
	Inputs map[string]any `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// EdgeDefinition declares a must-complete-before relation between two nodes.
//
// Wiring maps a target input parameter to a field of the source node's
// output. Only wired fields flow across an edge; an empty field name wires
// the source's whole output value. Name-based inference is deliberately
// not supported.
type EdgeDefinition struct {
	ID     string            `json:"id,omitempty" yaml:"id,omitempty"`
	From   string            `json:"from" yaml:"from"`
	To     string            `json:"to" yaml:"to"`
	Wiring map[string]string `json:"wiring,omitempty" yaml:"wiring,omitempty"`
}

package weave

import "context"

// ParamSpec describes one declared parameter of an agent method.
type ParamSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// MethodSpec describes one callable method exposed by an agent.
type MethodSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Params      []ParamSpec `json:"params,omitempty"`
}

// AgentCard is the published capability record for one agent. Cards are
// immutable once published; the directory looks them up by agent name.
type AgentCard struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Methods     []MethodSpec `json:"methods"`
}

// Method returns the MethodSpec for the named method, or nil if the card does
// not declare it.
func (c *AgentCard) Method(name string) *MethodSpec {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}

// Invoker is the closed capability interface every agent exposes to the
// orchestration core: one late-bound method call, no transport knowledge.
type Invoker interface {
	Invoke(ctx context.Context, method string, inputs map[string]any) (any, error)
}

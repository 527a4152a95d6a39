package agents

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/soochol/weave/internal/weave"
)

// TransformAgent evaluates an expression over its inputs. It lets a
// workflow reshape upstream outputs without calling out of process.
type TransformAgent struct{}

// Card returns the published capability record for the transform agent.
func (a *TransformAgent) Card() weave.AgentCard {
	return weave.AgentCard{
		Name:        "transform",
		Description: "Evaluates an expression over node inputs and returns the result.",
		Methods: []weave.MethodSpec{{
			Name:        "eval",
			Description: "Evaluate an expression. All other inputs are available as variables.",
			Params: []weave.ParamSpec{
				{Name: "expression", Type: "string", Required: true, Description: "Expression to evaluate"},
				{Name: "value", Type: "any", Required: false, Description: "Primary input value, bound as 'value'"},
			},
		}},
	}
}

func (a *TransformAgent) Invoke(_ context.Context, method string, inputs map[string]any) (any, error) {
	if method != "eval" {
		return nil, fmt.Errorf("transform has no method %q", method)
	}
	expression, _ := inputs["expression"].(string)
	if expression == "" {
		return nil, fmt.Errorf("expression is required")
	}

	env := make(map[string]any, len(inputs))
	for k, v := range inputs {
		if k != "expression" {
			env[k] = v
		}
	}

	program, err := expr.Compile(expression, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression %q: %w", expression, err)
	}
	return map[string]any{"result": result}, nil
}

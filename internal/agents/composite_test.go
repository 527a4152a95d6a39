package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/soochol/weave/internal/weave"
)

type stubRunner struct {
	result *weave.RunResult
	calls  int
}

func (r *stubRunner) Execute(_ context.Context, _ *weave.WorkflowDefinition, _ map[string]any) (*weave.RunResult, error) {
	r.calls++
	return r.result, nil
}

func compositeDef(name string) *weave.CompositeDefinition {
	return &weave.CompositeDefinition{
		Name:  name,
		Nodes: []weave.NodeDefinition{{ID: "n1", Agent: "auth", Method: "login"}},
	}
}

func TestCompositeAgentInvoke(t *testing.T) {
	runner := &stubRunner{result: &weave.RunResult{
		Status: weave.StatusSuccess,
		Logs:   []weave.ExecutionLogEntry{{NodeID: "n1", Status: weave.StatusSuccess}},
	}}
	a := NewCompositeAgent(compositeDef("LoginFlow"), runner)

	out, err := a.Invoke(context.Background(), weave.CompositeMethodName, map[string]any{"username": "u"})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	m := out.(map[string]any)
	if m["status"] != weave.StatusSuccess {
		t.Fatalf("unexpected status: %v", m["status"])
	}
	if runner.calls != 1 {
		t.Fatalf("expected one engine run, got %d", runner.calls)
	}
}

func TestCompositeAgentRejectsUnknownMethod(t *testing.T) {
	a := NewCompositeAgent(compositeDef("LoginFlow"), &stubRunner{})
	if _, err := a.Invoke(context.Background(), "start", nil); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestCompositeAgentFailedRunIsError(t *testing.T) {
	runner := &stubRunner{result: &weave.RunResult{Status: weave.StatusError}}
	a := NewCompositeAgent(compositeDef("LoginFlow"), runner)
	if _, err := a.Invoke(context.Background(), weave.CompositeMethodName, nil); err == nil {
		t.Fatal("expected error for failed embedded run")
	}
}

func TestCompositeAgentDepthLimit(t *testing.T) {
	// Each invocation re-enters itself through the runner to simulate
	// deeply nested composites.
	var a *CompositeAgent
	recurse := runnerFunc(func(ctx context.Context, _ *weave.WorkflowDefinition, _ map[string]any) (*weave.RunResult, error) {
		if _, err := a.Invoke(ctx, weave.CompositeMethodName, nil); err != nil {
			return nil, err
		}
		return &weave.RunResult{Status: weave.StatusSuccess}, nil
	})
	a = NewCompositeAgent(compositeDef("Recursive"), recurse)

	_, err := a.Invoke(context.Background(), weave.CompositeMethodName, nil)
	if err == nil {
		t.Fatal("expected depth limit error")
	}
	if !strings.Contains(err.Error(), "depth") {
		t.Fatalf("expected depth limit error, got %v", err)
	}
}

type runnerFunc func(ctx context.Context, wf *weave.WorkflowDefinition, inputs map[string]any) (*weave.RunResult, error)

func (f runnerFunc) Execute(ctx context.Context, wf *weave.WorkflowDefinition, inputs map[string]any) (*weave.RunResult, error) {
	return f(ctx, wf, inputs)
}

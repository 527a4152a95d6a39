package agents

import (
	"context"
	"testing"

	"github.com/soochol/weave/internal/weave"
)

type echoAgent struct{}

func (echoAgent) Invoke(_ context.Context, method string, inputs map[string]any) (any, error) {
	return map[string]any{"method": method, "inputs": inputs}, nil
}

func TestRegistryLocalWinsOverFallback(t *testing.T) {
	reg := NewRegistry()
	reg.Register("echo", echoAgent{})
	reg.AddFallback(func(name string) (weave.Invoker, bool) {
		t.Fatal("fallback must not be consulted for a local agent")
		return nil, false
	})

	inv, ok := reg.Resolve("echo")
	if !ok {
		t.Fatal("expected local agent")
	}
	out, err := inv.Invoke(context.Background(), "m", nil)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if out.(map[string]any)["method"] != "m" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestRegistryFallbackOrder(t *testing.T) {
	reg := NewRegistry()
	reg.AddFallback(func(name string) (weave.Invoker, bool) {
		if name == "first" {
			return echoAgent{}, true
		}
		return nil, false
	})
	reg.AddFallback(func(name string) (weave.Invoker, bool) {
		return echoAgent{}, true
	})

	if _, ok := reg.Resolve("first"); !ok {
		t.Fatal("expected first fallback to resolve")
	}
	if _, ok := reg.Resolve("anything"); !ok {
		t.Fatal("expected second fallback to resolve")
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resolve("ghost"); ok {
		t.Fatal("expected miss for unknown agent")
	}
}

func TestRegisterBuiltinsPublishesCards(t *testing.T) {
	reg := NewRegistry()
	cards := RegisterBuiltins(reg)
	if len(cards) == 0 {
		t.Fatal("expected builtin cards")
	}
	for _, c := range cards {
		if _, ok := reg.Resolve(c.Name); !ok {
			t.Fatalf("builtin %q published but not registered", c.Name)
		}
		if len(c.Methods) == 0 {
			t.Fatalf("builtin %q has no methods", c.Name)
		}
	}
}

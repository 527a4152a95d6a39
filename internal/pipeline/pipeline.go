// Package pipeline implements the context-routed query pipeline: a fixed
// five-role orchestration that resolves a user-chosen context to a data
// sink and drives specialized agents to answer a read-only query.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/soochol/weave/internal/engine"
	"github.com/soochol/weave/internal/weave"
)

// Error kinds surfaced to callers alongside the human-readable message.
const (
	KindUnrecognizedContext = "unrecognized-context"
	KindChatFailed          = "chat-failed"
	KindPlanFailed          = "plan-failed"
	KindPlanNotReadOnly     = "plan-not-read-only"
	KindSinkError           = "sink-error"
)

// SinkResolver resolves a context ID to sink connection details.
// Satisfied by services.SinkService.
type SinkResolver interface {
	Lookup(ctx context.Context, contextID string) (*weave.SinkEntry, error)
}

// RoleBindings names the agent bound to each pipeline role. Analytics is
// optional; an empty name disables the role.
type RoleBindings struct {
	Chat      string
	Planner   string
	Executor  string
	Analytics string
}

// DefaultRoles is the standard role-to-agent binding.
var DefaultRoles = RoleBindings{
	Chat:      "chat",
	Planner:   "planner",
	Executor:  "executor",
	Analytics: "analytics",
}

// Pipeline drives one query through sink resolution, planning, execution,
// optional analytics, and formatting. Pipelines are stateless across
// queries (single-turn).
type Pipeline struct {
	sinks    SinkResolver
	invokers engine.InvokerResolver
	roles    RoleBindings
}

// New creates a Pipeline. Zero-value role names fall back to DefaultRoles.
func New(sinks SinkResolver, invokers engine.InvokerResolver, roles RoleBindings) *Pipeline {
	if roles.Chat == "" {
		roles.Chat = DefaultRoles.Chat
	}
	if roles.Planner == "" {
		roles.Planner = DefaultRoles.Planner
	}
	if roles.Executor == "" {
		roles.Executor = DefaultRoles.Executor
	}
	return &Pipeline{sinks: sinks, invokers: invokers, roles: roles}
}

// Handle answers one query against one context. Every outcome, including
// failure, is a typed QueryResponse; errors are never swallowed.
func (p *Pipeline) Handle(ctx context.Context, req weave.QueryRequest) weave.QueryResponse {
	id := uuid.NewString()

	// 1. Sink resolution. An unresolved context halts the pipeline here:
	// no role, conversational included, may be invoked.
	sink, err := p.sinks.Lookup(ctx, req.ContextID)
	if err != nil {
		return errorResponse(id, KindUnrecognizedContext, err)
	}
	sinkDetails := sinkPayload(sink)

	// 2. Conversational role opens the turn.
	chatOut, err := p.invokeRole(ctx, p.roles.Chat, "converse", map[string]any{
		"query":      req.Query,
		"context_id": req.ContextID,
		"sink":       sinkDetails,
	})
	if err != nil {
		return errorResponse(id, KindChatFailed, err)
	}
	query := req.Query
	if refined, ok := stringField(chatOut, "query"); ok && refined != "" {
		query = refined
	}

	// 3. Planning role produces a read-only plan.
	planOut, err := p.invokeRole(ctx, p.roles.Planner, "plan", map[string]any{
		"query":      query,
		"context_id": req.ContextID,
		"sink":       sinkDetails,
	})
	if err != nil {
		return errorResponse(id, KindPlanFailed, err)
	}
	plan, ok := stringField(planOut, "plan")
	if !ok || plan == "" {
		return errorResponse(id, KindPlanFailed, fmt.Errorf("planner returned no plan"))
	}
	execMethod, _ := stringField(planOut, "execution_method")
	if execMethod == "" {
		execMethod = "run_query"
	}

	// Hard invariant of the planning role, enforced independently of the
	// planner agent and of sink-level permissions.
	if err := ValidateReadOnly(plan); err != nil {
		return errorResponse(id, KindPlanNotReadOnly, err)
	}

	// 4. Execution role runs the plan against the sink.
	results, err := p.invokeRole(ctx, p.roles.Executor, execMethod, map[string]any{
		"plan":      plan,
		"sink_type": sink.SinkType,
		"endpoint":  sink.Endpoint,
		"params":    sink.Params,
	})
	if err != nil {
		return errorResponse(id, KindSinkError, err)
	}

	// 5. Optional analytics. Failure degrades the response, never the run.
	var viz any
	var vizErr string
	if p.roles.Analytics != "" {
		viz, err = p.invokeRole(ctx, p.roles.Analytics, "visualize", map[string]any{
			"results": results,
			"query":   query,
		})
		if err != nil {
			vizErr = err.Error()
			slog.Warn("analytics role failed, degrading to raw results", "query_id", id, "err", err)
		}
	}

	// 6. Formatting, back in the conversational role.
	formatted, err := p.invokeRole(ctx, p.roles.Chat, "format_response", map[string]any{
		"query":   query,
		"results": results,
	})
	if err != nil {
		return errorResponse(id, KindChatFailed, err)
	}

	respType, payload := Classify(results, viz, vizErr, formatted)
	return weave.QueryResponse{ID: id, Type: respType, Response: payload, Error: vizErr}
}

// invokeRole resolves and calls one role agent.
func (p *Pipeline) invokeRole(ctx context.Context, agent, method string, inputs map[string]any) (any, error) {
	inv, ok := p.invokers.Resolve(agent)
	if !ok {
		return nil, fmt.Errorf("role agent %q is not registered", agent)
	}
	out, err := inv.Invoke(ctx, method, inputs)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", agent, method, err)
	}
	return out, nil
}

func errorResponse(id, kind string, err error) weave.QueryResponse {
	return weave.QueryResponse{
		ID:    id,
		Type:  weave.ResponseError,
		Kind:  kind,
		Error: err.Error(),
	}
}

func sinkPayload(sink *weave.SinkEntry) map[string]any {
	return map[string]any{
		"sink_type": sink.SinkType,
		"endpoint":  sink.Endpoint,
		"params":    sink.Params,
	}
}

func stringField(v any, key string) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}

package weave

import "time"

// Status is the outcome of one node invocation, one fan-out item, or a
// whole run.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusError          Status = "error"
	StatusPartialSuccess Status = "partial_success"
)

// SubEntry is the outcome of one item of a fan-out node. It exists only
// under ExecutionLogEntry.Details.
type SubEntry struct {
	Status Status `json:"status"`
	Output any    `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ExecutionLogEntry records exactly one attempted node of a run. The
// ordered entry sequence is the primary observability artifact: every
// reachable node produces exactly one entry, success or not.
type ExecutionLogEntry struct {
	NodeID     string         `json:"node_id"`
	Agent      string         `json:"agent"`
	Method     string         `json:"method"`
	Status     Status         `json:"status"`
	Inputs     map[string]any `json:"inputs,omitempty"`
	Output     any            `json:"output,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Details    []SubEntry     `json:"details,omitempty"`
}

// DeriveRunStatus collapses per-entry outcomes into an overall run status:
// error beats partial_success beats success.
func DeriveRunStatus(logs []ExecutionLogEntry) Status {
	status := StatusSuccess
	for _, e := range logs {
		switch e.Status {
		case StatusError:
			return StatusError
		case StatusPartialSuccess:
			status = StatusPartialSuccess
		}
	}
	return status
}

// RunResult is the caller-facing outcome of one engine run.
type RunResult struct {
	Status Status              `json:"status"`
	Logs   []ExecutionLogEntry `json:"logs"`
}

// RunKind distinguishes what produced a run record.
type RunKind string

const (
	RunKindWorkflow RunKind = "workflow"
	RunKindQuery    RunKind = "query"
	RunKindSchedule RunKind = "schedule"
)

// RunRecord is the durable history entry for one workflow run or one
// query-pipeline invocation.
type RunRecord struct {
	ID          string              `json:"id"`
	Kind        RunKind             `json:"kind"`
	Ref         string              `json:"ref,omitempty"` // workflow/composite name or context id
	Status      Status              `json:"status"`
	Inputs      map[string]any      `json:"inputs,omitempty"`
	Logs        []ExecutionLogEntry `json:"logs,omitempty"`
	Error       string              `json:"error,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// FanOutResult is returned by an invoker whose method performed a bounded
// fan-out of independent sub-operations. The engine translates it into a
// partial_success entry when outcomes are mixed.
type FanOutResult struct {
	Items  []SubEntry `json:"items"`
	Output any        `json:"output,omitempty"`
}
